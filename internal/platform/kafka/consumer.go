package kafka

import (
	"context"
	"errors"
	"io"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one Kafka message. A returned error is logged and
// the message is still committed; the broker is not a retry queue here.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads messages from one topic as part of a consumer group.
type Consumer struct {
	reader *kafkago.Reader
	logger *zap.Logger
}

// NewConsumer creates a consumer-group reader for the given topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, logger: logger}
}

// Consume reads messages until the context is cancelled, invoking handler for each.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return err
			}
			c.logger.Error("failed to read kafka message", zap.Error(err))
			continue
		}

		if err := handler(ctx, msg); err != nil {
			c.logger.Error("message handler failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
