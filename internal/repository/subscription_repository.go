package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chargeDomain "github.com/creatorgate/service-subscription/internal/domain/charge"
	subDomain "github.com/creatorgate/service-subscription/internal/domain/subscription"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository.
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// CreateWithCharge inserts the subscription, its opening charge and the
// provider counter increment in one transaction. A duplicate (provider,
// subscriber) pair aborts the whole transaction.
func (r *GormSubscriptionRepository) CreateWithCharge(ctx context.Context, s *subDomain.Subscription, c *chargeDomain.Charge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := toSubModel(s)
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return platformdomain.NewDuplicateSubscriptionError("subscription already exists for this provider")
			}
			return err
		}

		result := tx.Model(&ProviderModel{}).
			Where("id = ?", s.ProviderID()).
			Updates(map[string]interface{}{
				"total_subscribers": gorm.Expr("total_subscribers + 1"),
				"updated_at":        s.CreatedAt(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return platformdomain.NewNotFoundError("provider", s.ProviderID().String())
		}

		chargeModel := toChargeModel(c)
		return tx.Create(&chargeModel).Error
	})
}

// UpdateWithCharge persists a renewed window and its charge atomically, with
// optimistic locking on the subscription version.
func (r *GormSubscriptionRepository) UpdateWithCharge(ctx context.Context, s *subDomain.Subscription, c *chargeDomain.Charge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateWithVersion(tx, s); err != nil {
			return err
		}
		chargeModel := toChargeModel(c)
		return tx.Create(&chargeModel).Error
	})
}

// Update persists changes to a subscription with optimistic locking.
func (r *GormSubscriptionRepository) Update(ctx context.Context, s *subDomain.Subscription) error {
	return updateWithVersion(r.db.WithContext(ctx), s)
}

func updateWithVersion(tx *gorm.DB, s *subDomain.Subscription) error {
	model := toSubModel(s)
	previousVersion := s.Version() - 1

	result := tx.Model(&SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("StartTime", "EndTime", "LastPayment", "AutoRenewal", "Version", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return platformdomain.NewConflictError("subscription was modified by another transaction")
	}
	return nil
}

// FindByPair returns the unique record for a (provider, subscriber) pair.
func (r *GormSubscriptionRepository) FindByPair(ctx context.Context, providerID, subscriberID uuid.UUID) (*subDomain.Subscription, error) {
	var model SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND subscriber_id = ?", providerID, subscriberID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformdomain.NewNotFoundError("subscription", providerID.String()+"/"+subscriberID.String())
		}
		return nil, err
	}
	return toSubDomain(&model), nil
}

// FindDueForRenewal returns auto-renewing subscriptions whose window elapsed.
func (r *GormSubscriptionRepository) FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*subDomain.Subscription, error) {
	var models []SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("auto_renewal = ? AND end_time <= ?", true, now).
		Order("end_time ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	subs := make([]*subDomain.Subscription, len(models))
	for i := range models {
		subs[i] = toSubDomain(&models[i])
	}
	return subs, nil
}

// ListAll returns all subscriptions with pagination (admin).
func (r *GormSubscriptionRepository) ListAll(ctx context.Context, page, limit int) ([]*subDomain.Subscription, int64, error) {
	var total int64
	r.db.WithContext(ctx).Model(&SubscriptionModel{}).Count(&total)

	var models []SubscriptionModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	subs := make([]*subDomain.Subscription, len(models))
	for i := range models {
		subs[i] = toSubDomain(&models[i])
	}
	return subs, total, nil
}

func toSubModel(s *subDomain.Subscription) SubscriptionModel {
	return SubscriptionModel{
		ID:           s.ID(),
		ProviderID:   s.ProviderID(),
		SubscriberID: s.SubscriberID(),
		StartTime:    s.StartTime(),
		EndTime:      s.EndTime(),
		LastPayment:  s.LastPayment(),
		AutoRenewal:  s.AutoRenewal(),
		Version:      s.Version(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func toSubDomain(m *SubscriptionModel) *subDomain.Subscription {
	return subDomain.Reconstruct(
		m.ID, m.SubscriberID, m.ProviderID,
		m.StartTime, m.EndTime, m.LastPayment,
		m.AutoRenewal, m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toChargeModel(c *chargeDomain.Charge) ChargeModel {
	return ChargeModel{
		ID:             c.ID(),
		SubscriptionID: c.SubscriptionID(),
		ProviderID:     c.ProviderID(),
		SubscriberID:   c.SubscriberID(),
		AmountCents:    c.AmountCents(),
		Kind:           string(c.Kind()),
		GatewayRef:     c.GatewayRef(),
		ChargedAt:      c.ChargedAt(),
	}
}
