package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hongphuc2004/Music-Flow/platform/config"
)

// Producer publishes catalog change events (song.uploaded, song.deleted) to a
// single topic. Publishing is fire-and-forget from the API's point of view:
// failures are the caller's to log, never to surface.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

type event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	Time    time.Time   `json:"time"`
}

func NewProducer(cfg *config.Config) *Producer {
	brokers := strings.Split(cfg.KafkaBrokers, ",")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.KafkaTopic,
		MaxAttempts:            3,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &Producer{writer: writer, topic: cfg.KafkaTopic}
}

func (p *Producer) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	value, err := json.Marshal(event{
		Type:    eventType,
		Payload: payload,
		Time:    time.Now(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
