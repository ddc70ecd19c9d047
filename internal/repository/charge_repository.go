package repository

import (
	"context"

	"gorm.io/gorm"

	chargeDomain "github.com/creatorgate/service-subscription/internal/domain/charge"
)

// GormChargeRepository implements ChargeRepository using GORM. Charges are
// inserted by the subscription repository; this one only reads.
type GormChargeRepository struct {
	db *gorm.DB
}

// NewGormChargeRepository creates a new GormChargeRepository.
func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{db: db}
}

// ListAll returns all charges with pagination, newest first (admin).
func (r *GormChargeRepository) ListAll(ctx context.Context, page, limit int) ([]*chargeDomain.Charge, int64, error) {
	var total int64
	r.db.WithContext(ctx).Model(&ChargeModel{}).Count(&total)

	var models []ChargeModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("charged_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	charges := make([]*chargeDomain.Charge, len(models))
	for i := range models {
		charges[i] = toChargeDomain(&models[i])
	}
	return charges, total, nil
}

// GetRevenueStats returns the total charged amount and a per-kind count (admin).
func (r *GormChargeRepository) GetRevenueStats(ctx context.Context) (int64, map[string]int64, error) {
	var totalCents int64
	r.db.WithContext(ctx).Model(&ChargeModel{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totalCents)

	type kindCount struct {
		Kind  string
		Count int64
	}
	var results []kindCount
	if err := r.db.WithContext(ctx).Model(&ChargeModel{}).
		Select("kind, count(*) as count").
		Group("kind").
		Find(&results).Error; err != nil {
		return 0, nil, err
	}

	counts := make(map[string]int64)
	for _, kc := range results {
		counts[kc.Kind] = kc.Count
	}
	return totalCents, counts, nil
}

func toChargeDomain(m *ChargeModel) *chargeDomain.Charge {
	return chargeDomain.Reconstruct(
		m.ID, m.SubscriptionID, m.ProviderID, m.SubscriberID,
		m.AmountCents, chargeDomain.Kind(m.Kind), m.GatewayRef, m.ChargedAt,
	)
}
