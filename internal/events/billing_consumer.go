package events

import (
	"context"
	"strings"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/creatorgate/service-subscription/internal/platform/kafka"
)

// RenewalProcessor renews one (provider, subscriber) pair.
type RenewalProcessor interface {
	ProcessRenewal(ctx context.Context, providerID, subscriberID uuid.UUID) error
}

// BillingEventConsumer listens to billing events and triggers renewals.
type BillingEventConsumer struct {
	consumer  *kafka.Consumer
	processor RenewalProcessor
	logger    *zap.Logger
}

// NewBillingEventConsumer creates a new consumer for billing events.
func NewBillingEventConsumer(
	brokers []string,
	groupID string,
	processor RenewalProcessor,
	logger *zap.Logger,
) *BillingEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBillingEvents, logger)
	return &BillingEventConsumer{
		consumer:  consumer,
		processor: processor,
		logger:    logger,
	}
}

// Start begins consuming billing events. It blocks until the context is cancelled.
func (c *BillingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *BillingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from billing topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return err
	}

	c.logger.Info("received billing event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, RenewalRequested):
		return c.handleRenewalRequested(ctx, cloudEvent)

	default:
		c.logger.Debug("ignoring unhandled billing event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

// handleRenewalRequested processes a RenewalRequestedEvent.
func (c *BillingEventConsumer) handleRenewalRequested(ctx context.Context, ce kafka.CloudEvent) error {
	var event RenewalRequestedEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse RenewalRequestedEvent data", zap.Error(err))
		return err
	}

	return c.processor.ProcessRenewal(ctx, event.ProviderID, event.SubscriberID)
}

// Close closes the underlying Kafka consumer.
func (c *BillingEventConsumer) Close() error {
	return c.consumer.Close()
}
