package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/internal/highlight/repository"
	"football_highlights_service/pkg/config"
	errprocess "football_highlights_service/pkg/err"
	"football_highlights_service/pkg/logger"
	"football_highlights_service/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 檔名被佔用時最多重試次數
const maxReserveAttempts = 16

// ExportPipeline 依序剪出片段後合併成精華影片
type ExportPipeline struct {
	transcoder       Transcoder
	store            repository.ArtifactStore
	recorder         Recorder
	workers          int
	cleanupOnFailure bool
	now              func() time.Time
}

// NewExportPipeline 建立 ExportPipeline
func NewExportPipeline(transcoder Transcoder, store repository.ArtifactStore, cfg config.ExportConfig, recorder Recorder) *ExportPipeline {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ExportPipeline{
		transcoder:       transcoder,
		store:            store,
		recorder:         recorder,
		workers:          max(cfg.CutWorkers, 1),
		cleanupOnFailure: cfg.CleanupOnFailure,
		now:              time.Now,
	}
}

// Run 剪出每個片段並合併, 輸出順序與輸入相同
func (p *ExportPipeline) Run(ctx context.Context, source string, highlights []domain.ExportHighlight) (*domain.ExportRes, error) {
	// 1. 剪出片段
	names, err := p.cutAll(ctx, source, highlights)
	if err != nil {
		if p.cleanupOnFailure {
			p.removeOutputs(names)
		}
		return nil, err
	}

	// 2. 寫入 concat manifest, 結束後一律刪除
	manifest, manifestPath, err := p.writeManifest(names)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ExportFailed, "Failed to write concat list", err)
	}
	defer func() {
		if err := p.store.RemoveOutput(manifest); err != nil {
			logger.Log.Warn("刪除 concat manifest 失敗", zap.String("manifest", manifest), zap.Error(err))
		}
	}()

	// 3. 合併成精華影片
	reel, reelPath, err := p.reserveReel()
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ExportFailed, "Failed to create highlight reel", err)
	}
	if err := p.transcoder.Concat(ctx, manifestPath, reelPath); err != nil {
		_ = p.store.RemoveOutput(reel)
		return nil, errprocess.Wrap(errprocess.ExportFailed, "Failed to merge clips", err)
	}
	logger.Log.Info("精華影片合併完成", zap.String("output", reel), zap.Int("clips", len(names)))

	res := &domain.ExportRes{
		Clips: make([]domain.Clip, len(highlights)),
		Reel:  domain.NewReel(reel),
	}
	for i, h := range highlights {
		res.Clips[i] = domain.NewClip(h, names[i])
	}
	return res, nil
}

// cutAll 回傳與 highlights 等長的檔名, 失敗時回傳已完成的部分
func (p *ExportPipeline) cutAll(ctx context.Context, source string, highlights []domain.ExportHighlight) ([]string, error) {
	names := make([]string, len(highlights))

	if p.workers <= 1 {
		for i, h := range highlights {
			name, err := p.cutOne(ctx, source, i, h)
			if err != nil {
				return names, err
			}
			names[i] = name
		}
		return names, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, h := range highlights {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name, err := p.cutOne(gctx, source, i, h)
			if err != nil {
				return err
			}
			names[i] = name
			return nil
		})
	}
	return names, g.Wait()
}

func (p *ExportPipeline) cutOne(ctx context.Context, source string, index int, h domain.ExportHighlight) (string, error) {
	var (
		name string
		path string
		err  error
	)
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		name = clipName(index+1, h.Label)
		path, err = p.store.ReserveOutput(name)
		if !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", errprocess.Wrap(errprocess.ExportFailed, fmt.Sprintf("Failed to create clip %d", index+1), err)
	}

	start := p.now()
	if err := p.transcoder.Cut(ctx, source, path, h.Start, h.Duration()); err != nil {
		p.recorder.RecordCut(metrics.ResultError, time.Since(start))
		_ = p.store.RemoveOutput(name)
		return "", errprocess.Wrap(errprocess.ExportFailed, fmt.Sprintf("Failed to cut clip %d (%s)", index+1, h.Label), err)
	}
	p.recorder.RecordCut(metrics.ResultSuccess, time.Since(start))

	logger.Log.Info("片段剪輯完成",
		zap.Int("clip_index", index+1),
		zap.String("label", string(h.Label)),
		zap.Float64("start", h.Start),
		zap.Float64("end", h.End),
		zap.String("output", name),
	)
	return name, nil
}

func (p *ExportPipeline) writeManifest(names []string) (string, string, error) {
	var (
		name string
		path string
		err  error
	)
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		name = manifestName()
		path, err = p.store.ReserveOutput(name)
		if !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	dir := filepath.Dir(path)
	for _, n := range names {
		b.WriteString(manifestLine(filepath.Join(dir, n)))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		_ = p.store.RemoveOutput(name)
		return "", "", err
	}
	return name, path, nil
}

// reserveReel 同一毫秒已有輸出時往後遞增
func (p *ExportPipeline) reserveReel() (string, string, error) {
	ts := p.now().UnixMilli()

	var err error
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		name := reelName(ts + int64(attempt))
		path, reserveErr := p.store.ReserveOutput(name)
		if reserveErr == nil {
			return name, path, nil
		}
		err = reserveErr
		if !errors.Is(reserveErr, os.ErrExist) {
			break
		}
	}
	return "", "", err
}

func (p *ExportPipeline) removeOutputs(names []string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		if err := p.store.RemoveOutput(n); err != nil {
			logger.Log.Warn("刪除片段失敗", zap.String("output", n), zap.Error(err))
		}
	}
}
