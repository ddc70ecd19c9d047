package provider

import (
	"time"

	"github.com/google/uuid"

	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// Provider is the aggregate root for a content provider's subscription offer.
// Price and duration are fixed at registration and never mutated afterwards.
type Provider struct {
	id               uuid.UUID
	authority        uuid.UUID
	priceCents       int64
	durationSeconds  int64
	totalSubscribers int64
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewProvider registers a new provider offer owned by authority.
func NewProvider(authority uuid.UUID, priceCents, durationSeconds int64, now time.Time) (*Provider, error) {
	if authority == uuid.Nil {
		return nil, platformdomain.NewInvalidConfigurationError("provider authority is required")
	}
	if priceCents < 0 {
		return nil, platformdomain.NewInvalidConfigurationError("subscription price must not be negative")
	}
	if durationSeconds <= 0 {
		return nil, platformdomain.NewInvalidConfigurationError("subscription duration must be positive")
	}

	return &Provider{
		id:              uuid.New(),
		authority:       authority,
		priceCents:      priceCents,
		durationSeconds: durationSeconds,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Provider from persistence.
func Reconstruct(id, authority uuid.UUID, priceCents, durationSeconds, totalSubscribers, version int64, createdAt, updatedAt time.Time) *Provider {
	return &Provider{
		id: id, authority: authority,
		priceCents: priceCents, durationSeconds: durationSeconds,
		totalSubscribers: totalSubscribers, version: version,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Duration returns the subscription window length.
func (p *Provider) Duration() time.Duration {
	return time.Duration(p.durationSeconds) * time.Second
}

// Getters.
func (p *Provider) ID() uuid.UUID           { return p.id }
func (p *Provider) Authority() uuid.UUID    { return p.authority }
func (p *Provider) PriceCents() int64       { return p.priceCents }
func (p *Provider) DurationSeconds() int64  { return p.durationSeconds }
func (p *Provider) TotalSubscribers() int64 { return p.totalSubscribers }
func (p *Provider) Version() int64          { return p.version }
func (p *Provider) CreatedAt() time.Time    { return p.createdAt }
func (p *Provider) UpdatedAt() time.Time    { return p.updatedAt }
