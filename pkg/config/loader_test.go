package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHighlightServiceDefaults(t *testing.T) {
	cfg, err := LoadHighlightService(EnvInfo{HighlightService: "highlight_service"})
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "uploads", cfg.UploadFolder)
	assert.Equal(t, "outputs", cfg.OutputFolder)
	assert.Equal(t, 500, cfg.MaxUploadMB)
	assert.Equal(t, "mock-v1.0", cfg.Detector.Model)
	assert.Equal(t, 1, cfg.Export.CutWorkers)
	assert.Equal(t, BrokerNone, cfg.Events.Broker)
	assert.Equal(t, time.Duration(0), cfg.FFmpeg.Timeout)
}

func TestLoadHighlightServiceEnvOverride(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("UPLOAD_FOLDER", "/data/in")
	t.Setenv("OUTPUT_FOLDER", "/data/out")
	t.Setenv("EXPORT_CUT_WORKERS", "4")

	cfg, err := LoadHighlightService(EnvInfo{HighlightService: "highlight_service"})
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "/data/in", cfg.UploadFolder)
	assert.Equal(t, "/data/out", cfg.OutputFolder)
	assert.Equal(t, 4, cfg.Export.CutWorkers)
}

func TestLoadHighlightServiceYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RABBIT_PASSWORD", "s3cret")
	yaml := `port: "9000"
output_folder: reels
detector:
  simulated_latency: 2s
  seed: 42
events:
  broker: rabbitmq
  rabbitmq:
    password: ${RABBIT_PASSWORD}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "highlight_service.yaml"), []byte(yaml), 0644))

	cfg, err := LoadHighlightService(EnvInfo{HighlightService: "highlight_service", HighlightServiceYAMLPath: dir})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "reels", cfg.OutputFolder)
	assert.Equal(t, "uploads", cfg.UploadFolder)
	assert.Equal(t, 2*time.Second, cfg.Detector.SimulatedLatency)
	assert.Equal(t, uint64(42), cfg.Detector.Seed)
	assert.Equal(t, BrokerRabbitMQ, cfg.Events.Broker)
	assert.Equal(t, "s3cret", cfg.Events.RabbitMQ.Password)
	assert.Equal(t, "guest", cfg.Events.RabbitMQ.User)
}

func TestLoadConfigMissingYAMLUsesDefaults(t *testing.T) {
	cfg, err := LoadHighlightService(EnvInfo{HighlightService: "nothing_here", HighlightServiceYAMLPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "10000", cfg.Port)
}

func TestGetPath(t *testing.T) {
	_, err := GetPath("definitely-not-a-file.env", 2)
	assert.Error(t, err)
}
