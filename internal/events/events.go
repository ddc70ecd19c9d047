// Package events defines the Kafka topics and event payloads exchanged by the
// subscription service. The consumer lives alongside; payload types carry no
// behavior so they can be imported from any layer.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicSubscriptionEvents = "subscription.events"
	TopicBillingEvents      = "billing.events"
)

// Event types.
const (
	SubscriptionOpened  = "subscription.opened"
	SubscriptionRenewed = "subscription.renewed"
	RenewalFailed       = "subscription.renewal_failed"
	ContentPublished    = "content.published"
	RenewalRequested    = "billing.renewal_requested"
)

// SubscriptionOpenedEvent is published after a subscription is opened and paid.
type SubscriptionOpenedEvent struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ProviderID     uuid.UUID `json:"provider_id"`
	SubscriberID   uuid.UUID `json:"subscriber_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AmountCents    int64     `json:"amount_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// SubscriptionRenewedEvent is published after a successful renewal.
type SubscriptionRenewedEvent struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ProviderID     uuid.UUID `json:"provider_id"`
	SubscriberID   uuid.UUID `json:"subscriber_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AmountCents    int64     `json:"amount_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RenewalFailedEvent is published when a renewal attempt does not complete.
type RenewalFailedEvent struct {
	ProviderID   uuid.UUID `json:"provider_id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ContentPublishedEvent is published when a provider adds a content record.
type ContentPublishedEvent struct {
	RecordID    uuid.UUID `json:"record_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	ContentID   string    `json:"content_id"`
	ContentHash string    `json:"content_hash"`
	ContentType string    `json:"content_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// RenewalRequestedEvent is consumed from the billing topic to trigger a renewal
// for one (provider, subscriber) pair.
type RenewalRequestedEvent struct {
	ProviderID   uuid.UUID `json:"provider_id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
