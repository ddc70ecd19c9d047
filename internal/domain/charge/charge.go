package charge

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes what a charge paid for.
type Kind string

const (
	KindOpen    Kind = "open"
	KindRenewal Kind = "renewal"
)

// Charge is an immutable audit record of one successful gateway transfer.
type Charge struct {
	id             uuid.UUID
	subscriptionID uuid.UUID
	providerID     uuid.UUID
	subscriberID   uuid.UUID
	amountCents    int64
	kind           Kind
	gatewayRef     string
	chargedAt      time.Time
}

// NewCharge records a transfer that the gateway reported as successful.
func NewCharge(subscriptionID, providerID, subscriberID uuid.UUID, amountCents int64, kind Kind, gatewayRef string, chargedAt time.Time) *Charge {
	return &Charge{
		id:             uuid.New(),
		subscriptionID: subscriptionID,
		providerID:     providerID,
		subscriberID:   subscriberID,
		amountCents:    amountCents,
		kind:           kind,
		gatewayRef:     gatewayRef,
		chargedAt:      chargedAt,
	}
}

// Reconstruct rebuilds a Charge from persistence.
func Reconstruct(id, subscriptionID, providerID, subscriberID uuid.UUID, amountCents int64, kind Kind, gatewayRef string, chargedAt time.Time) *Charge {
	return &Charge{
		id: id, subscriptionID: subscriptionID, providerID: providerID, subscriberID: subscriberID,
		amountCents: amountCents, kind: kind, gatewayRef: gatewayRef, chargedAt: chargedAt,
	}
}

// Getters.
func (c *Charge) ID() uuid.UUID             { return c.id }
func (c *Charge) SubscriptionID() uuid.UUID { return c.subscriptionID }
func (c *Charge) ProviderID() uuid.UUID     { return c.providerID }
func (c *Charge) SubscriberID() uuid.UUID   { return c.subscriberID }
func (c *Charge) AmountCents() int64        { return c.amountCents }
func (c *Charge) Kind() Kind                { return c.kind }
func (c *Charge) GatewayRef() string        { return c.gatewayRef }
func (c *Charge) ChargedAt() time.Time      { return c.chargedAt }
