package config

import "time"

// HighlightService definition highlight_service YAML structure
type HighlightService struct {
	Port         string `mapstructure:"port"`
	IP           string `mapstructure:"ip"`
	UploadFolder string `mapstructure:"upload_folder"`
	OutputFolder string `mapstructure:"output_folder"`
	MaxUploadMB  int    `mapstructure:"max_upload_mb"`
	Pprof        bool   `mapstructure:"pprof"`

	FFmpeg   FFmpegConfig   `mapstructure:"ffmpeg"`
	Detector DetectorConfig `mapstructure:"detector"`
	Export   ExportConfig   `mapstructure:"export"`
	Events   EventsConfig   `mapstructure:"events"`
}

// FFmpegConfig definition ffmpeg binaries
type FFmpegConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	// 0 表示不限制
	Timeout time.Duration `mapstructure:"timeout"`
}

// DetectorConfig definition mock detector
type DetectorConfig struct {
	Model            string        `mapstructure:"model"`
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
	// 0 表示使用時間作為 seed
	Seed uint64 `mapstructure:"seed"`
}

// ExportConfig definition export pipeline
type ExportConfig struct {
	CutWorkers       int  `mapstructure:"cut_workers"`
	CleanupOnFailure bool `mapstructure:"cleanup_on_failure"`
}

// EventsConfig definition export event broker
type EventsConfig struct {
	// none, rabbitmq, kafka
	Broker   string         `mapstructure:"broker"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	IP            string `mapstructure:"ip"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Queue         string `mapstructure:"queue"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryInterval int    `mapstructure:"retry_interval"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryCount    int      `mapstructure:"retry_count"`
	RetryInterval int      `mapstructure:"retry_interval"`
}

const (
	// BrokerNone 不發送事件
	BrokerNone = "none"
	// BrokerRabbitMQ 發送到 rabbitmq
	BrokerRabbitMQ = "rabbitmq"
	// BrokerKafka 發送到 kafka
	BrokerKafka = "kafka"
)

// HighlightServiceDefaults 預設值, 可被 yaml 與環境變數覆蓋
func HighlightServiceDefaults() map[string]interface{} {
	return map[string]interface{}{
		"port":                           "10000",
		"ip":                             "0.0.0.0",
		"upload_folder":                  "uploads",
		"output_folder":                  "outputs",
		"max_upload_mb":                  500,
		"pprof":                          false,
		"ffmpeg.ffmpeg_path":             "ffmpeg",
		"ffmpeg.ffprobe_path":            "ffprobe",
		"ffmpeg.timeout":                 "0s",
		"detector.model":                 "mock-v1.0",
		"detector.simulated_latency":     "0s",
		"detector.seed":                  0,
		"export.cut_workers":             1,
		"export.cleanup_on_failure":      false,
		"events.broker":                  BrokerNone,
		"events.rabbitmq.ip":             "localhost",
		"events.rabbitmq.port":           "5672",
		"events.rabbitmq.user":           "guest",
		"events.rabbitmq.password":       "guest",
		"events.rabbitmq.queue":          "highlight.export",
		"events.rabbitmq.retry_count":    5,
		"events.rabbitmq.retry_interval": 2,
		"events.kafka.brokers":           []string{"localhost:9092"},
		"events.kafka.topic":             "highlight.export",
		"events.kafka.retry_count":       5,
		"events.kafka.retry_interval":    2,
	}
}
