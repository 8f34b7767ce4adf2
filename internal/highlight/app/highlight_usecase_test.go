package app

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/pkg/config"
	errprocess "football_highlights_service/pkg/err"
	"football_highlights_service/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// detectorMock 是 Detector 的 Mock
type detectorMock struct {
	mock.Mock
}

func (m *detectorMock) Detect(ctx context.Context, duration float64) ([]domain.Highlight, error) {
	args := m.Called(ctx, duration)
	hs, _ := args.Get(0).([]domain.Highlight)
	return hs, args.Error(1)
}

func (m *detectorMock) Model() string {
	return m.Called().String(0)
}

// MockPublisher 是 EventPublisher 的 Mock
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishExport(ctx context.Context, event domain.ExportEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockRecorder 是 Recorder 的 Mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordUpload(result string)                        { m.Called(result) }
func (m *MockRecorder) RecordDetection(count int)                         { m.Called(count) }
func (m *MockRecorder) RecordExport(result string, elapsed time.Duration) { m.Called(result) }
func (m *MockRecorder) RecordCut(result string, elapsed time.Duration)    { m.Called(result) }
func (m *MockRecorder) RecordEvent(result string)                         { m.Called(result) }

type usecaseFixture struct {
	usecase    HighlightUseCase
	uploadDir  string
	outputDir  string
	transcoder *fakeTranscoder
	publisher  *MockPublisher
	recorder   *MockRecorder
}

func newUsecaseFixture(t *testing.T, det Detector) *usecaseFixture {
	t.Helper()
	store := newTestFileStore(t)
	tc := &fakeTranscoder{duration: 312.6}
	pub := new(MockPublisher)
	rec := new(MockRecorder)
	rec.On("RecordCut", mock.Anything).Maybe()

	pipeline := NewExportPipeline(tc, store, config.ExportConfig{CutWorkers: 1}, rec)
	if det == nil {
		det = NewMockDetector("mock-v1.0", 5)
	}
	u := NewHighlightUseCase(store, tc, det, pipeline, pub, WithRecorder(rec))
	return &usecaseFixture{
		usecase:    u,
		uploadDir:  store.UploadDir(),
		outputDir:  store.OutputDir(),
		transcoder: tc,
		publisher:  pub,
		recorder:   rec,
	}
}

func (f *usecaseFixture) stageUpload(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.uploadDir, name), []byte("source"), 0644))
}

// 測試 UploadVideo
func TestUploadVideo(t *testing.T) {
	t.Run("成功上傳影片", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordUpload", metrics.ResultSuccess).Once()

		res, err := f.usecase.UploadVideo(context.Background(), domain.UploadVideoReq{
			FileName:    "final match.mp4",
			ContentType: "video/mp4",
			File:        strings.NewReader("dummy video content"),
		})
		require.NoError(t, err)

		v := res.Video
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}_final match\.mp4$`), v.Filename)
		assert.True(t, strings.HasPrefix(v.Filename, v.ID+"_"))
		assert.Equal(t, "final match.mp4", v.OriginalName)
		assert.Equal(t, "/uploads/"+v.Filename, v.Path)
		assert.Equal(t, 313.0, v.Duration)
		assert.Equal(t, int64(len("dummy video content")), v.Size)
		assert.Equal(t, "football", v.Sport)
		assert.FileExists(t, filepath.Join(f.uploadDir, v.Filename))
		f.recorder.AssertExpectations(t)
	})

	t.Run("未提供檔案", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordUpload", metrics.ResultError).Once()

		_, err := f.usecase.UploadVideo(context.Background(), domain.UploadVideoReq{})
		require.Error(t, err)
		assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
		assert.Equal(t, "No video file provided", errprocess.Message(err))
	})

	t.Run("不支援的格式", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordUpload", metrics.ResultError).Once()

		_, err := f.usecase.UploadVideo(context.Background(), domain.UploadVideoReq{
			FileName:    "match.mkv",
			ContentType: "video/x-matroska",
			File:        strings.NewReader("x"),
		})
		require.Error(t, err)
		assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
		assert.Equal(t, "Only MP4, MOV, and AVI files are allowed", errprocess.Message(err))
		assert.Empty(t, dirEntries(t, f.uploadDir))
	})

	t.Run("空檔案不保留", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordUpload", metrics.ResultError).Once()

		_, err := f.usecase.UploadVideo(context.Background(), domain.UploadVideoReq{
			FileName:    "empty.mov",
			ContentType: "video/quicktime",
			File:        strings.NewReader(""),
		})
		require.Error(t, err)
		assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
		assert.Empty(t, dirEntries(t, f.uploadDir))
	})

	t.Run("讀取影片資訊失敗", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.transcoder.probeErr = errors.New(`exec: "ffprobe": executable file not found in $PATH`)
		f.recorder.On("RecordUpload", metrics.ResultError).Once()

		_, err := f.usecase.UploadVideo(context.Background(), domain.UploadVideoReq{
			FileName:    "match.avi",
			ContentType: "video/x-msvideo",
			File:        strings.NewReader("avi"),
		})
		require.Error(t, err)
		assert.Equal(t, errprocess.ProbeFailed, errprocess.KindOf(err))
		assert.Equal(t, "Failed to read video metadata. Is FFmpeg installed?", errprocess.Message(err))
		assert.Empty(t, dirEntries(t, f.uploadDir))
	})
}

func TestDetectHighlights(t *testing.T) {
	t.Run("回傳偵測結果與 metadata", func(t *testing.T) {
		det := new(detectorMock)
		hs := []domain.Highlight{{ID: "a", Start: 20, End: 30, Label: domain.LabelGoal, Confidence: 0.9, Enabled: true}}
		det.On("Detect", mock.Anything, 300.0).Return(hs, nil).Once()
		det.On("Model").Return("mock-v1.0")

		f := newUsecaseFixture(t, det)
		f.recorder.On("RecordDetection", 1).Once()

		res, err := f.usecase.DetectHighlights(context.Background(), domain.DetectReq{VideoPath: "/uploads/u_match.mp4", Duration: 300})
		require.NoError(t, err)

		assert.Equal(t, hs, res.Highlights)
		assert.Equal(t, "/uploads/u_match.mp4", res.Metadata.VideoPath)
		assert.Equal(t, 300.0, res.Metadata.Duration)
		assert.Equal(t, "mock-v1.0", res.Metadata.Model)
		_, err = time.Parse(time.RFC3339, res.Metadata.ProcessedAt)
		assert.NoError(t, err)
		det.AssertExpectations(t)
	})

	t.Run("duration 不合法", func(t *testing.T) {
		det := new(detectorMock)
		f := newUsecaseFixture(t, det)

		for _, d := range []float64{0, -3, math.NaN(), domain.MaxVideoDuration * 2, 1e300} {
			_, err := f.usecase.DetectHighlights(context.Background(), domain.DetectReq{Duration: d})
			require.Error(t, err)
			assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
			assert.Equal(t, "Valid video duration is required", errprocess.Message(err))
		}
		det.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
	})

	t.Run("模擬延遲可被取消", func(t *testing.T) {
		det := new(detectorMock)
		store := newTestFileStore(t)
		u := NewHighlightUseCase(store, &fakeTranscoder{}, det, nil, nil, WithSimulatedLatency(time.Hour))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := u.DetectHighlights(ctx, domain.DetectReq{Duration: 60})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		det.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
	})
}

func TestExportClips(t *testing.T) {
	req := domain.ExportReq{
		VideoFilename: "u1_match.mp4",
		Highlights: []domain.ExportHighlight{
			{ID: "h1", Start: 12, End: 20, Label: domain.LabelGoal},
			{ID: "h2", Start: 40, End: 50, Label: domain.LabelPenalty},
		},
	}

	t.Run("成功匯出並發送事件", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.stageUpload(t, "u1_match.mp4")
		f.recorder.On("RecordExport", metrics.ResultSuccess).Once()
		f.recorder.On("RecordEvent", metrics.ResultSuccess).Once()
		f.publisher.On("PublishExport", mock.Anything, mock.MatchedBy(func(e domain.ExportEvent) bool {
			return e.VideoFilename == "u1_match.mp4" && len(e.ClipFilenames) == 2 && e.TotalSeconds == 18
		})).Return(nil).Once()

		res, err := f.usecase.ExportClips(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, res.Clips, 2)
		assert.Equal(t, "h1", res.Clips[0].ID)
		assert.Equal(t, "h2", res.Clips[1].ID)
		assert.Equal(t, filepath.Join(f.uploadDir, "u1_match.mp4"), f.transcoder.cuts[0].input)
		assert.FileExists(t, filepath.Join(f.outputDir, res.Reel.Filename))

		f.publisher.AssertExpectations(t)
		f.recorder.AssertExpectations(t)
	})

	t.Run("事件發送失敗不影響結果", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.stageUpload(t, "u1_match.mp4")
		f.recorder.On("RecordExport", metrics.ResultSuccess).Once()
		f.recorder.On("RecordEvent", metrics.ResultError).Once()
		f.publisher.On("PublishExport", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := f.usecase.ExportClips(context.Background(), req)
		require.NoError(t, err)
		f.recorder.AssertExpectations(t)
	})

	t.Run("缺少欄位", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordExport", metrics.ResultError)

		for _, bad := range []domain.ExportReq{
			{VideoFilename: "u1_match.mp4"},
			{Highlights: req.Highlights},
		} {
			_, err := f.usecase.ExportClips(context.Background(), bad)
			require.Error(t, err)
			assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
			assert.Equal(t, "Video filename and highlights are required", errprocess.Message(err))
		}
		assert.Zero(t, f.transcoder.cutCount())
	})

	t.Run("片段內容不合法", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.stageUpload(t, "u1_match.mp4")
		f.recorder.On("RecordExport", metrics.ResultError)

		for _, h := range []domain.ExportHighlight{
			{Start: 20, End: 20, Label: domain.LabelGoal},
			{Start: 30, End: 20, Label: domain.LabelGoal},
			{Start: -1, End: 5, Label: domain.LabelGoal},
			{Start: 1, End: 5, Label: "offside"},
		} {
			_, err := f.usecase.ExportClips(context.Background(), domain.ExportReq{
				VideoFilename: "u1_match.mp4",
				Highlights:    []domain.ExportHighlight{h},
			})
			require.Error(t, err)
			assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
		}
		assert.Zero(t, f.transcoder.cutCount())
	})

	t.Run("來源影片不存在", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordExport", metrics.ResultError)

		_, err := f.usecase.ExportClips(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, errprocess.NotFound, errprocess.KindOf(err))
		assert.Equal(t, "Video file not found", errprocess.Message(err))
		assert.Zero(t, f.transcoder.cutCount())
	})

	t.Run("路徑穿越", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.recorder.On("RecordExport", metrics.ResultError)

		_, err := f.usecase.ExportClips(context.Background(), domain.ExportReq{
			VideoFilename: "../outputs/u1_match.mp4",
			Highlights:    req.Highlights,
		})
		require.Error(t, err)
		assert.Equal(t, errprocess.InvalidInput, errprocess.KindOf(err))
	})

	t.Run("剪輯失敗", func(t *testing.T) {
		f := newUsecaseFixture(t, nil)
		f.stageUpload(t, "u1_match.mp4")
		f.transcoder.failCutAt = 1
		f.recorder.On("RecordExport", metrics.ResultError).Once()

		_, err := f.usecase.ExportClips(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, errprocess.ExportFailed, errprocess.KindOf(err))
		f.publisher.AssertNotCalled(t, "PublishExport", mock.Anything, mock.Anything)
	})
}

func TestGetArtifact(t *testing.T) {
	f := newUsecaseFixture(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(f.outputDir, "highlight_reel_1.mp4"), []byte("reel"), 0644))

	a, err := f.usecase.GetArtifact("highlight_reel_1.mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(4), a.Size)
	assert.Equal(t, filepath.Join(f.outputDir, "highlight_reel_1.mp4"), a.Path)

	for _, name := range []string{"missing.mp4", "../uploads/x.mp4", ""} {
		_, err := f.usecase.GetArtifact(name)
		require.Error(t, err)
		assert.Equal(t, errprocess.NotFound, errprocess.KindOf(err))
		assert.Equal(t, "File not found", errprocess.Message(err))
	}
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}
