package kafka

import "context"

// EventPublisher publishes CloudEvents. Satisfied by Producer; tests inject a
// recording fake so services can be exercised without a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event CloudEvent) error
}
