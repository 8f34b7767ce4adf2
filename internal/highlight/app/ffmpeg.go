package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/pkg/config"
	"football_highlights_service/pkg/logger"

	"go.uber.org/zap"
)

// stderr 只保留最後 8KB 作為錯誤訊息
const maxStderrBytes = 8 * 1024

// Transcoder 影片處理工具, 由 ffmpeg/ffprobe 實作
type Transcoder interface {
	Probe(ctx context.Context, input string) (*domain.ProbeResult, error)
	Cut(ctx context.Context, input, output string, start, duration float64) error
	Concat(ctx context.Context, manifest, output string) error
}

// FFmpeg 以子程序執行 ffmpeg / ffprobe
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// NewFFmpeg 建立 FFmpeg transcoder
func NewFFmpeg(cfg config.FFmpegConfig) *FFmpeg {
	f := &FFmpeg{
		ffmpegPath:  cfg.FFmpegPath,
		ffprobePath: cfg.FFprobePath,
		timeout:     cfg.Timeout,
	}
	if f.ffmpegPath == "" {
		f.ffmpegPath = "ffmpeg"
	}
	if f.ffprobePath == "" {
		f.ffprobePath = "ffprobe"
	}
	return f
}

// CutArgs 不重新編碼, 從 start 開始剪 duration 秒
func CutArgs(input, output string, start, duration float64) []string {
	return []string{
		"-y",
		"-ss", formatSeconds(start),
		"-i", input,
		"-t", formatSeconds(duration),
		"-c", "copy",
		output,
	}
}

// ConcatArgs 依 manifest 順序串接片段
func ConcatArgs(manifest, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}

// ProbeArgs 讀取影片長度
func ProbeArgs(input string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		input,
	}
}

// Cut 剪出單一片段
func (f *FFmpeg) Cut(ctx context.Context, input, output string, start, duration float64) error {
	_, err := f.run(ctx, f.ffmpegPath, CutArgs(input, output, start, duration))
	return err
}

// Concat 合併片段
func (f *FFmpeg) Concat(ctx context.Context, manifest, output string) error {
	_, err := f.run(ctx, f.ffmpegPath, ConcatArgs(manifest, output))
	return err
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe 讀取影片長度（秒）
func (f *FFmpeg) Probe(ctx context.Context, input string) (*domain.ProbeResult, error) {
	out, err := f.run(ctx, f.ffprobePath, ProbeArgs(input))
	if err != nil {
		return nil, err
	}

	var p probeOutput
	if err := json.Unmarshal(out, &p); err != nil {
		return nil, fmt.Errorf("ffprobe 輸出解析失敗: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(p.Format.Duration), 64)
	if err != nil {
		return nil, fmt.Errorf("ffprobe duration[%s] 格式錯誤: %w", p.Format.Duration, err)
	}
	return &domain.ProbeResult{Duration: duration}, nil
}

func (f *FFmpeg) run(ctx context.Context, bin string, args []string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
		start  = time.Now()
	)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = io.Writer(&limitedWriter{w: &stderr, limit: maxStderrBytes})

	logger.Log.Debug("執行 "+bin, zap.Strings("args", args))
	err := cmd.Run()
	if err != nil {
		logger.Log.Warn(bin+" 執行失敗",
			zap.Strings("args", args),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s 錯誤: %v, output: %s", bin, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// limitedWriter 只保留最後 limit bytes
type limitedWriter struct {
	w     *bytes.Buffer
	limit int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	lw.w.Write(p)
	if lw.w.Len() > lw.limit {
		b := lw.w.Bytes()
		tail := append([]byte(nil), b[len(b)-lw.limit:]...)
		lw.w.Reset()
		lw.w.Write(tail)
	}
	return n, nil
}
