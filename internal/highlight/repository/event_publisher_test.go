package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"football_highlights_service/internal/highlight/domain"

	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRabbitChannel 是 RabbitMQ 的 Mock
type MockRabbitChannel struct {
	mock.Mock
}

func (m *MockRabbitChannel) GetRabbit() *amqp.Channel {
	args := m.Called()
	return args.Get(0).(*amqp.Channel)
}

func (m *MockRabbitChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

// MockKafkaWriter 是 kafka.Writer 的 Mock
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	return m.Called().Error(0)
}

func testEvent() domain.ExportEvent {
	return domain.ExportEvent{
		VideoFilename: "u1_match.mp4",
		ReelFilename:  "highlight_reel_1700000000000.mp4",
		ClipFilenames: []string{"clip_1_goal_aaaaaaaa.mp4"},
		TotalSeconds:  8,
		CreatedAt:     time.Unix(1700000000, 0).UTC(),
	}
}

func TestRabbitPublisher(t *testing.T) {
	ch := new(MockRabbitChannel)
	ch.On("Publish", "", "highlight.export", false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got domain.ExportEvent
		return msg.ContentType == "application/json" &&
			json.Unmarshal(msg.Body, &got) == nil &&
			got.ReelFilename == "highlight_reel_1700000000000.mp4"
	})).Return(nil).Once()

	err := NewRabbitPublisher(ch, "highlight.export").PublishExport(context.Background(), testEvent())
	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestRabbitPublisherError(t *testing.T) {
	ch := new(MockRabbitChannel)
	ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := NewRabbitPublisher(ch, "highlight.export").PublishExport(context.Background(), testEvent())
	assert.ErrorContains(t, err, "channel closed")
}

func TestKafkaPublisher(t *testing.T) {
	w := new(MockKafkaWriter)
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "u1_match.mp4"
	})).Return(nil).Once()

	err := NewKafkaPublisher(w).PublishExport(context.Background(), testEvent())
	require.NoError(t, err)
	w.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishExport(context.Background(), testEvent()))
}
