package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/pkg/database"

	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
)

// EventPublisher 發送匯出完成事件
type EventPublisher interface {
	PublishExport(ctx context.Context, event domain.ExportEvent) error
}

// NopPublisher 不發送任何事件
type NopPublisher struct{}

// PublishExport do nothing
func (NopPublisher) PublishExport(context.Context, domain.ExportEvent) error {
	return nil
}

// RabbitPublisher 發送事件到 RabbitMQ queue
type RabbitPublisher struct {
	channel database.RabbitRepo
	queue   string
}

// NewRabbitPublisher 建立 RabbitPublisher
func NewRabbitPublisher(channel database.RabbitRepo, queue string) *RabbitPublisher {
	return &RabbitPublisher{channel: channel, queue: queue}
}

// PublishExport publish to default exchange with queue name as routing key
func (p *RabbitPublisher) PublishExport(_ context.Context, event domain.ExportEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("reel[%s] 事件序列化失敗: %w", event.ReelFilename, err)
	}

	return p.channel.Publish(
		"",      // 預設 exchange
		p.queue, // queue 名稱
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CreatedAt,
			Body:         data,
		},
	)
}

// KafkaPublisher 發送事件到 Kafka topic
type KafkaPublisher struct {
	writer database.KafkaWriter
}

// NewKafkaPublisher 建立 KafkaPublisher
func NewKafkaPublisher(writer database.KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishExport key 為來源影片, 同一部影片的事件會進同一個 partition
func (p *KafkaPublisher) PublishExport(ctx context.Context, event domain.ExportEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("reel[%s] 事件序列化失敗: %w", event.ReelFilename, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VideoFilename),
		Value: data,
		Time:  event.CreatedAt,
	})
}
