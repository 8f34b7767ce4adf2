package database

import (
	"context"
	"fmt"
	"time"

	"football_highlights_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaWriter kafka.Writer 的最小介面
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 讓測試可以替換 broker 連線檢查
var dialBroker = func(ctx context.Context, broker string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return err
	}
	return conn.Close()
}

// NewKafkaWriterWithRetry 確認任一 broker 可連線後建立 Kafka Writer
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	if len(k.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers 未設定")
	}

	var err error
	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		for _, broker := range k.Brokers {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = dialBroker(ctx, broker)
			cancel()
			if err == nil {
				logger.Log.Info("Kafka 連線成功", zap.String("broker", broker), zap.Int("attempt", attempt))
				return &kafka.Writer{
					Addr:                   kafka.TCP(k.Brokers...),
					Topic:                  k.Topic,
					Balancer:               &kafka.LeastBytes{},
					AllowAutoTopicCreation: true,
				}, nil
			}
		}

		logger.Log.Warn("Kafka 連線失敗",
			zap.Int("attempt", attempt),
			zap.Int("retry_count", k.RetryCount),
			zap.Error(err),
		)
		time.Sleep(k.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("無法建立 Kafka Writer，經過 %d 次嘗試: %v", k.RetryCount, err)
}
