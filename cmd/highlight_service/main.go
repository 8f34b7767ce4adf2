package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "football_highlights_service/cmd/highlight_service/docs"
	"football_highlights_service/internal/highlight/api/handlers"
	"football_highlights_service/internal/highlight/api/router"
	"football_highlights_service/internal/highlight/app"
	"football_highlights_service/internal/highlight/repository"
	"football_highlights_service/pkg/config"
	"football_highlights_service/pkg/database"
	"football_highlights_service/pkg/logger"
	"football_highlights_service/pkg/metrics"
	testtool "football_highlights_service/pkg/test_tool"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	env := config.Env()
	logger.Log = logger.Initialize(env.HighlightService, env.HighlightServiceLogPath)
	defer logger.Log.Sync()

	cfg, err := config.LoadHighlightService(env)
	if err != nil {
		logger.Log.Fatal("Failed to load config", zap.Error(err))
	}

	// 1. 上傳區與輸出區
	store, err := repository.NewFileStore(cfg.UploadFolder, cfg.OutputFolder)
	if err != nil {
		logger.Log.Fatal("Failed to prepare storage folders",
			zap.String("upload_folder", cfg.UploadFolder),
			zap.String("output_folder", cfg.OutputFolder),
			zap.Error(err),
		)
	}

	// 2. 指標
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewHighlightMetrics(reg)
	if err != nil {
		logger.Log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// 3. 匯出事件
	publisher, closer, err := newPublisher(cfg.Events)
	if err != nil {
		logger.Log.Fatal("Failed to connect event broker", zap.String("broker", cfg.Events.Broker), zap.Error(err))
	}
	defer closer.Close()

	// 4. 組裝 usecase
	transcoder := app.NewFFmpeg(cfg.FFmpeg)
	detector := app.NewMockDetector(cfg.Detector.Model, cfg.Detector.Seed)
	pipeline := app.NewExportPipeline(transcoder, store, cfg.Export, m)
	usecase := app.NewHighlightUseCase(store, transcoder, detector, pipeline, publisher,
		app.WithRecorder(m),
		app.WithSimulatedLatency(cfg.Detector.SimulatedLatency),
	)

	opts := router.Options{
		UploadDir:   store.UploadDir(),
		OutputDir:   store.OutputDir(),
		MaxUploadMB: cfg.MaxUploadMB,
		Gatherer:    reg,
	}
	r := router.NewApp(opts)
	router.RegisterRoutes(r, handlers.NewHighlightHandler(usecase), opts)

	if pprofSrv := testtool.StartPprof(cfg.Pprof, testtool.DefaultPprofAddr); pprofSrv != nil {
		defer pprofSrv.Close()
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down highlight service")
		if err := r.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.IP, cfg.Port)
	logger.Log.Info("Highlight service listening",
		zap.String("address", addr),
		zap.String("upload_folder", store.UploadDir()),
		zap.String("output_folder", store.OutputDir()),
		zap.String("model", detector.Model()),
	)
	if err := r.Listen(addr); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// newPublisher 依 events.broker 建立事件發送端
func newPublisher(cfg config.EventsConfig) (repository.EventPublisher, io.Closer, error) {
	switch cfg.Broker {
	case "", config.BrokerNone:
		return repository.NopPublisher{}, closeFunc(func() error { return nil }), nil

	case config.BrokerRabbitMQ:
		rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    rabbitURL,
			RetryCount:    cfg.RabbitMQ.RetryCount,
			RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
		})
		if err != nil {
			return nil, nil, err
		}

		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		if err := database.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, fmt.Errorf("queue[%s] declare failed: %w", cfg.RabbitMQ.Queue, err)
		}

		closer := closeFunc(func() error {
			ch.Close()
			return conn.Close()
		})
		return repository.NewRabbitPublisher(database.NewRabbitRepository(ch), cfg.RabbitMQ.Queue), closer, nil

	case config.BrokerKafka:
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewKafkaPublisher(writer), writer, nil
	}

	return nil, nil, fmt.Errorf("unknown events broker %q", cfg.Broker)
}
