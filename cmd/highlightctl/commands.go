package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"football_highlights_service/internal/highlight/app"
	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/internal/highlight/repository"
	"football_highlights_service/pkg/config"

	"github.com/spf13/cobra"
)

// settings 所有子指令共用的參數
type settings struct {
	FFmpeg    config.FFmpegConfig
	OutputDir string
	Seed      uint64
	Model     string
	Workers   int
	Cleanup   bool
}

func newRootCommand() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "highlightctl",
		Short:         "Detect and export football highlights from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&s.FFmpeg.FFmpegPath, "ffmpeg", "ffmpeg", "Path to the ffmpeg binary")
	root.PersistentFlags().StringVar(&s.FFmpeg.FFprobePath, "ffprobe", "ffprobe", "Path to the ffprobe binary")
	root.PersistentFlags().DurationVar(&s.FFmpeg.Timeout, "timeout", 0, "Per ffmpeg invocation timeout, 0 for none")

	root.AddCommand(probeCommand(s), detectCommand(s), exportCommand(s))
	return root
}

func probeCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "probe [video]",
		Short: "Print the duration of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.NewFFmpeg(s.FFmpeg).Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func detectCommand(s *settings) *cobra.Command {
	var duration float64
	cmd := &cobra.Command{
		Use:   "detect [video]",
		Short: "Generate candidate highlights for a video or a bare duration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			videoPath := ""
			if len(args) == 1 {
				videoPath = args[0]
				probe, err := app.NewFFmpeg(s.FFmpeg).Probe(ctx, videoPath)
				if err != nil {
					return err
				}
				duration = probe.Duration
			}

			detector := app.NewMockDetector(s.Model, s.Seed)
			highlights, err := detector.Detect(ctx, duration)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), domain.DetectRes{
				Highlights: highlights,
				Metadata: domain.DetectMetadata{
					VideoPath:   videoPath,
					Duration:    duration,
					ProcessedAt: time.Now().UTC().Format(time.RFC3339),
					Model:       detector.Model(),
				},
			})
		},
	}

	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "Video duration in seconds when no video is given")
	cmd.Flags().Uint64Var(&s.Seed, "seed", 0, "Random seed, 0 for time based")
	cmd.Flags().StringVar(&s.Model, "model", "mock-v1.0", "Model name reported in metadata")
	return cmd
}

func exportCommand(s *settings) *cobra.Command {
	var highlightsFile string
	cmd := &cobra.Command{
		Use:   "export [video]",
		Short: "Cut highlights into clips and merge them into a reel",
		Long: `Reads highlights as JSON (an array, or the output of "detect") from --highlights
or stdin, writes clip_<n>_<label>_<id>.mp4 files and highlight_reel_<ms>.mp4 into --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if highlightsFile != "" && highlightsFile != "-" {
				f, err := os.Open(highlightsFile)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			highlights, err := readHighlights(in)
			if err != nil {
				return err
			}
			res, err := runExport(cmd.Context(), s, args[0], highlights)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&highlightsFile, "highlights", "-", "JSON file with highlights, - for stdin")
	cmd.Flags().StringVarP(&s.OutputDir, "output", "o", "outputs", "Output directory")
	cmd.Flags().IntVar(&s.Workers, "workers", 1, "Number of concurrent cuts")
	cmd.Flags().BoolVar(&s.Cleanup, "cleanup-on-failure", false, "Remove clips already cut when an export fails")
	return cmd
}

// runExport 以影片所在目錄作為上傳區, 與 HTTP 匯出共用驗證
func runExport(ctx context.Context, s *settings, video string, highlights []domain.ExportHighlight) (*domain.ExportRes, error) {
	source, err := filepath.Abs(video)
	if err != nil {
		return nil, err
	}

	store, err := repository.NewFileStore(filepath.Dir(source), s.OutputDir)
	if err != nil {
		return nil, err
	}

	transcoder := app.NewFFmpeg(s.FFmpeg)
	pipeline := app.NewExportPipeline(transcoder, store, config.ExportConfig{
		CutWorkers:       s.Workers,
		CleanupOnFailure: s.Cleanup,
	}, nil)
	usecase := app.NewHighlightUseCase(store, transcoder, app.NewMockDetector(s.Model, s.Seed), pipeline, nil)

	return usecase.ExportClips(ctx, domain.ExportReq{
		VideoFilename: filepath.Base(source),
		Highlights:    highlights,
	})
}

// inputHighlight 沒有 enabled 欄位時視為啟用
type inputHighlight struct {
	domain.ExportHighlight
	Enabled *bool `json:"enabled"`
}

// readHighlights 接受 highlight 陣列或 detect 的輸出, 略過 enabled=false
func readHighlights(r io.Reader) ([]domain.ExportHighlight, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var list []inputHighlight
	if err := json.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Highlights []inputHighlight `json:"highlights"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("highlights must be a JSON array or an object with a highlights field: %w", err)
		}
		list = wrapped.Highlights
	}

	highlights := make([]domain.ExportHighlight, 0, len(list))
	for _, h := range list {
		if h.Enabled != nil && !*h.Enabled {
			continue
		}
		highlights = append(highlights, h.ExportHighlight)
	}
	return highlights, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
