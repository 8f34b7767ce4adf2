package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/internal/highlight/repository"
	errprocess "football_highlights_service/pkg/err"
	"football_highlights_service/pkg/logger"
	"football_highlights_service/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HighlightUseCase 這裡封裝了對外提供的應用服務
type HighlightUseCase interface {
	UploadVideo(ctx context.Context, up domain.UploadVideoReq) (*domain.UploadVideoRes, error)
	DetectHighlights(ctx context.Context, req domain.DetectReq) (*domain.DetectRes, error)
	ExportClips(ctx context.Context, req domain.ExportReq) (*domain.ExportRes, error)
	GetArtifact(filename string) (*domain.Artifact, error)
}

type highlightUseCase struct {
	Store      repository.ArtifactStore
	Transcoder Transcoder
	Detector   Detector
	Pipeline   *ExportPipeline
	Publisher  repository.EventPublisher

	recorder Recorder
	latency  time.Duration
	now      func() time.Time
}

// Option highlightUseCase 選項
type Option func(*highlightUseCase)

// WithRecorder 設定指標記錄
func WithRecorder(r Recorder) Option {
	return func(u *highlightUseCase) {
		if r != nil {
			u.recorder = r
		}
	}
}

// WithSimulatedLatency 偵測前等待, 模擬模型運算時間
func WithSimulatedLatency(d time.Duration) Option {
	return func(u *highlightUseCase) {
		u.latency = d
	}
}

// NewHighlightUseCase 建立一個新的 HighlightUseCase
func NewHighlightUseCase(store repository.ArtifactStore,
	transcoder Transcoder,
	detector Detector,
	pipeline *ExportPipeline,
	publisher repository.EventPublisher,
	opts ...Option,
) HighlightUseCase {
	u := &highlightUseCase{
		Store:      store,
		Transcoder: transcoder,
		Detector:   detector,
		Pipeline:   pipeline,
		Publisher:  publisher,
		recorder:   nopRecorder{},
		now:        time.Now,
	}
	if u.Publisher == nil {
		u.Publisher = repository.NopPublisher{}
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadVideo 儲存上傳影片並讀取長度
func (s *highlightUseCase) UploadVideo(ctx context.Context, up domain.UploadVideoReq) (res *domain.UploadVideoRes, err error) {
	defer func() {
		if err != nil {
			s.recorder.RecordUpload(metrics.ResultError)
			return
		}
		s.recorder.RecordUpload(metrics.ResultSuccess)
	}()

	// 1. 檢查檔案與格式
	if up.File == nil || up.FileName == "" {
		return nil, errprocess.Set(errprocess.InvalidInput, "No video file provided")
	}
	if !domain.IsAllowedContentType(up.ContentType) {
		return nil, errprocess.Set(errprocess.InvalidInput, "Only MP4, MOV, and AVI files are allowed")
	}

	// 2. 寫入上傳區, 檔名為 <uuid>_<原始檔名>
	id := uuid.NewString()
	filename := id + "_" + repository.SanitizeName(up.FileName, 200)
	path, size, err := s.Store.SaveUpload(filename, up.File)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.Internal, fmt.Sprintf("fileName[%s] Failed to save video", up.FileName), err)
	}
	if size == 0 {
		s.removeUpload(filename)
		return nil, errprocess.Set(errprocess.InvalidInput, "Uploaded video is empty")
	}

	// 3. 讀取影片長度
	probe, err := s.Transcoder.Probe(ctx, path)
	if err != nil {
		s.removeUpload(filename)
		return nil, errprocess.Wrap(errprocess.ProbeFailed, "Failed to read video metadata. Is FFmpeg installed?", err)
	}

	logger.Log.Info("影片上傳完成",
		zap.String("filename", filename),
		zap.Int64("size", size),
		zap.Float64("duration", probe.Duration),
	)

	return &domain.UploadVideoRes{
		Video: domain.Video{
			ID:           id,
			Filename:     filename,
			OriginalName: up.FileName,
			Path:         domain.UploadsURLPrefix + "/" + filename,
			Duration:     math.Round(probe.Duration),
			Size:         size,
			Sport:        domain.Sport,
		},
	}, nil
}

// DetectHighlights 偵測精華區間
func (s *highlightUseCase) DetectHighlights(ctx context.Context, req domain.DetectReq) (*domain.DetectRes, error) {
	if !domain.ValidDuration(req.Duration) {
		return nil, errprocess.Set(errprocess.InvalidInput, "Valid video duration is required")
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	highlights, err := s.Detector.Detect(ctx, req.Duration)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordDetection(len(highlights))

	logger.Log.Info("精華偵測完成",
		zap.String("video_path", req.VideoPath),
		zap.Float64("duration", req.Duration),
		zap.Int("highlights", len(highlights)),
	)

	return &domain.DetectRes{
		Highlights: highlights,
		Metadata: domain.DetectMetadata{
			VideoPath:   req.VideoPath,
			Duration:    req.Duration,
			ProcessedAt: s.now().UTC().Format(time.RFC3339),
			Model:       s.Detector.Model(),
		},
	}, nil
}

// ExportClips 剪出片段並合併成精華影片
func (s *highlightUseCase) ExportClips(ctx context.Context, req domain.ExportReq) (res *domain.ExportRes, err error) {
	start := s.now()
	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultError
		}
		s.recorder.RecordExport(result, time.Since(start))
	}()

	// 1. 驗證請求
	if req.VideoFilename == "" || len(req.Highlights) == 0 {
		return nil, errprocess.Set(errprocess.InvalidInput, "Video filename and highlights are required")
	}
	for i, h := range req.Highlights {
		if err := validateExportHighlight(h); err != nil {
			return nil, errprocess.Set(errprocess.InvalidInput, fmt.Sprintf("Invalid highlight %d: %v", i+1, err))
		}
	}

	// 2. 確認來源影片
	source, err := s.Store.ResolveUpload(req.VideoFilename)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidName) {
			return nil, errprocess.Set(errprocess.InvalidInput, "Invalid video filename")
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, errprocess.Set(errprocess.NotFound, "Video file not found")
		}
		return nil, errprocess.Wrap(errprocess.Internal, "Failed to read video file", err)
	}

	// 3. 剪輯與合併
	res, err = s.Pipeline.Run(ctx, source, req.Highlights)
	if err != nil {
		return nil, err
	}

	// 4. 發送完成事件, 失敗不影響回應
	s.publish(ctx, req, res)
	return res, nil
}

// GetArtifact 取得輸出區檔案
func (s *highlightUseCase) GetArtifact(filename string) (*domain.Artifact, error) {
	path, info, err := s.Store.ResolveOutput(filename)
	if err != nil {
		logger.Log.Debug("artifact not found", zap.String("filename", filename), zap.Error(err))
		return nil, &errprocess.Error{Kind: errprocess.NotFound, Msg: "File not found", Err: err}
	}
	return &domain.Artifact{Filename: filename, Path: path, Size: info.Size()}, nil
}

func (s *highlightUseCase) publish(ctx context.Context, req domain.ExportReq, res *domain.ExportRes) {
	event := domain.ExportEvent{
		VideoFilename: req.VideoFilename,
		ReelFilename:  res.Reel.Filename,
		ClipFilenames: make([]string, len(res.Clips)),
		CreatedAt:     s.now().UTC(),
	}
	for i, c := range res.Clips {
		event.ClipFilenames[i] = c.Filename
		event.TotalSeconds += c.End - c.Start
	}

	if err := s.Publisher.PublishExport(ctx, event); err != nil {
		s.recorder.RecordEvent(metrics.ResultError)
		logger.Log.Warn("匯出事件發送失敗", zap.String("reel", event.ReelFilename), zap.Error(err))
		return
	}
	s.recorder.RecordEvent(metrics.ResultSuccess)
}

func (s *highlightUseCase) removeUpload(filename string) {
	if err := s.Store.RemoveUpload(filename); err != nil {
		logger.Log.Warn("刪除上傳檔失敗", zap.String("filename", filename), zap.Error(err))
	}
}

func validateExportHighlight(h domain.ExportHighlight) error {
	switch {
	case math.IsNaN(h.Start) || math.IsNaN(h.End) || math.IsInf(h.Start, 0) || math.IsInf(h.End, 0):
		return errors.New("start and end must be numbers")
	case h.Start < 0:
		return errors.New("start must not be negative")
	case h.End <= h.Start:
		return errors.New("start must be before end")
	case !h.Label.Valid():
		return fmt.Errorf("unknown label %q", h.Label)
	}
	return nil
}
