package subscription

import (
	"time"

	"github.com/google/uuid"

	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// Subscription is the aggregate root for one (provider, subscriber) entitlement.
// The window [startTime, endTime] is the interval during which access is granted,
// inclusive at both ends.
type Subscription struct {
	id           uuid.UUID
	subscriberID uuid.UUID
	providerID   uuid.UUID
	startTime    time.Time
	endTime      time.Time
	lastPayment  time.Time
	autoRenewal  bool
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSubscription opens a subscription beginning at start. The start may lie in
// the future; it only must not precede now. The window spans exactly one
// provider duration and auto-renewal starts enabled.
func NewSubscription(subscriberID, providerID uuid.UUID, start time.Time, duration time.Duration, now time.Time) (*Subscription, error) {
	if start.Before(now) {
		return nil, platformdomain.NewInvalidStartTimeError("subscription start must not precede the current time")
	}

	return &Subscription{
		id:           uuid.New(),
		subscriberID: subscriberID,
		providerID:   providerID,
		startTime:    start,
		endTime:      start.Add(duration),
		lastPayment:  now,
		autoRenewal:  true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Subscription from persistence.
func Reconstruct(id, subscriberID, providerID uuid.UUID, startTime, endTime, lastPayment time.Time, autoRenewal bool, version int64, createdAt, updatedAt time.Time) *Subscription {
	return &Subscription{
		id: id, subscriberID: subscriberID, providerID: providerID,
		startTime: startTime, endTime: endTime, lastPayment: lastPayment,
		autoRenewal: autoRenewal, version: version,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// CanRenew reports whether a renewal is currently permitted. Renewal requires
// auto-renewal to be enabled and the current window to have fully elapsed.
func (s *Subscription) CanRenew(now time.Time) error {
	if !s.autoRenewal {
		return platformdomain.NewAutoRenewalDisabledError("auto-renewal is disabled for this subscription")
	}
	if now.Before(s.endTime) {
		return platformdomain.NewSubscriptionStillActiveError("subscription window has not elapsed yet")
	}
	return nil
}

// Renew advances the window by exactly one duration, chained from the old end
// time. A late renewal does not shift the window to "now": the new window
// starts where the old one ended, even if that interval is already in the past.
func (s *Subscription) Renew(duration time.Duration, now time.Time) error {
	if err := s.CanRenew(now); err != nil {
		return err
	}
	s.startTime = s.endTime
	s.endTime = s.endTime.Add(duration)
	s.lastPayment = now
	s.updatedAt = now
	return nil
}

// ToggleAutoRenewal flips the auto-renewal flag. Only the record's subscriber
// may do so.
func (s *Subscription) ToggleAutoRenewal(caller uuid.UUID, now time.Time) error {
	if caller != s.subscriberID {
		return platformdomain.NewUnauthorizedError("only the subscriber may toggle auto-renewal")
	}
	s.autoRenewal = !s.autoRenewal
	s.updatedAt = now
	return nil
}

// ActiveAt reports whether the window covers the given instant, boundaries included.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return !now.Before(s.startTime) && !now.After(s.endTime)
}

// IncrementVersion bumps the version for optimistic locking.
func (s *Subscription) IncrementVersion() {
	s.version++
}

// Getters.
func (s *Subscription) ID() uuid.UUID { return s.id }
func (s *Subscription) SubscriberID() uuid.UUID { return s.subscriberID }
func (s *Subscription) ProviderID() uuid.UUID { return s.providerID }
func (s *Subscription) StartTime() time.Time { return s.startTime }
func (s *Subscription) EndTime() time.Time { return s.endTime }
func (s *Subscription) LastPayment() time.Time { return s.lastPayment }
func (s *Subscription) AutoRenewal() bool { return s.autoRenewal }
func (s *Subscription) Version() int64 { return s.version }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }
