package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	providerDomain "github.com/creatorgate/service-subscription/internal/domain/provider"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// GormProviderRepository implements ProviderRepository using GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository.
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// Save persists a new provider.
func (r *GormProviderRepository) Save(ctx context.Context, p *providerDomain.Provider) error {
	model := toProviderModel(p)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID returns a provider by ID.
func (r *GormProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*providerDomain.Provider, error) {
	var model ProviderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformdomain.NewNotFoundError("provider", id.String())
		}
		return nil, err
	}
	return toProviderDomain(&model), nil
}

func toProviderModel(p *providerDomain.Provider) ProviderModel {
	return ProviderModel{
		ID:               p.ID(),
		Authority:        p.Authority(),
		PriceCents:       p.PriceCents(),
		DurationSeconds:  p.DurationSeconds(),
		TotalSubscribers: p.TotalSubscribers(),
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toProviderDomain(m *ProviderModel) *providerDomain.Provider {
	return providerDomain.Reconstruct(
		m.ID, m.Authority,
		m.PriceCents, m.DurationSeconds, m.TotalSubscribers, m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
