package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes CloudEvents to Kafka topics.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Kafka producer for the given brokers.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer, logger: logger}
}

// PublishEvent writes a CloudEvent to the given topic, keyed by event id.
func (p *Producer) PublishEvent(ctx context.Context, topic string, event CloudEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(event.ID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", event.Type),
		zap.String("id", event.ID),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
