package repository

import (
	"time"

	"github.com/google/uuid"
)

// ProviderModel is the GORM model for the providers table.
type ProviderModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Authority        uuid.UUID `gorm:"type:uuid;not null;index"`
	PriceCents       int64     `gorm:"not null"`
	DurationSeconds  int64     `gorm:"not null"`
	TotalSubscribers int64     `gorm:"not null;default:0"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ProviderModel) TableName() string { return "providers" }

// SubscriptionModel is the GORM model for the subscriptions table. The composite
// unique index enforces one record per (provider, subscriber) pair.
type SubscriptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_provider_subscriber"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_provider_subscriber"`
	StartTime    time.Time `gorm:"type:timestamptz;not null"`
	EndTime      time.Time `gorm:"type:timestamptz;not null;index"`
	LastPayment  time.Time `gorm:"type:timestamptz;not null"`
	AutoRenewal  bool      `gorm:"not null;default:true"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (SubscriptionModel) TableName() string { return "subscriptions" }

// ContentModel is the GORM model for the contents table.
type ContentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentID   string    `gorm:"type:varchar(64);not null"`
	ContentHash string    `gorm:"type:varchar(64);not null"`
	ContentType string    `gorm:"type:varchar(16);not null"`
	PublishedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ContentModel) TableName() string { return "contents" }

// ChargeModel is the GORM model for the charges table.
type ChargeModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SubscriberID   uuid.UUID `gorm:"type:uuid;not null"`
	AmountCents    int64     `gorm:"not null"`
	Kind           string    `gorm:"type:varchar(16);not null"`
	GatewayRef     string    `gorm:"type:varchar(64);not null"`
	ChargedAt      time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ChargeModel) TableName() string { return "charges" }
