package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/creatorgate/service-subscription/internal/domain/charge"
)

// SubscriptionRepository defines persistence operations for subscriptions.
// Writes that follow a successful payment carry the charge record so that the
// ledger mutation and its audit entry commit in one transaction.
type SubscriptionRepository interface {
	// CreateWithCharge inserts the subscription, records the opening charge and
	// increments the provider's subscriber counter atomically.
	CreateWithCharge(ctx context.Context, s *Subscription, c *charge.Charge) error

	// UpdateWithCharge persists a renewed window together with its charge,
	// using optimistic locking on the subscription version.
	UpdateWithCharge(ctx context.Context, s *Subscription, c *charge.Charge) error

	// Update persists changes with optimistic locking and no charge.
	Update(ctx context.Context, s *Subscription) error

	// FindByPair returns the unique record for a (provider, subscriber) pair.
	FindByPair(ctx context.Context, providerID, subscriberID uuid.UUID) (*Subscription, error)

	// FindDueForRenewal returns auto-renewing subscriptions whose window has
	// elapsed at the given instant, oldest expiry first.
	FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)

	// ListAll returns all subscriptions with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Subscription, int64, error)
}
