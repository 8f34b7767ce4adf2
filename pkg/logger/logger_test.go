package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l := Initialize("highlight_service", dir)
	l.Info("hello")
	l.Sync()

	name := filepath.Join(dir, "log_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service":"highlight_service"`)
}

func TestDebugModeToggle(t *testing.T) {
	l := Initialize("highlight_service", "")
	assert.False(t, l.IsDebugMode())

	l.SetDebugMode(true)
	assert.True(t, l.IsDebugMode())

	l.SetDebugMode(false)
	assert.False(t, l.IsDebugMode())
}

func TestSetNewNop(t *testing.T) {
	SetNewNop()
	require.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Info("ignored")
		Log.Errorf("ignored", assert.AnError)
	})
}

func TestWrap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := Wrap(zap.New(core))

	l.Info("export done", zap.String("reel", "highlight_reel_1.mp4"))
	l.Debug("hidden")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "highlight_reel_1.mp4", logs.All()[0].ContextMap()["reel"])
}
