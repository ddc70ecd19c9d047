package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentDomain "github.com/creatorgate/service-subscription/internal/domain/content"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// GormContentRepository implements ContentRepository using GORM.
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository.
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// Save persists a new content record.
func (r *GormContentRepository) Save(ctx context.Context, c *contentDomain.Content) error {
	model := toContentModel(c)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID returns a content record by its record id.
func (r *GormContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*contentDomain.Content, error) {
	var model ContentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformdomain.NewNotFoundError("content", id.String())
		}
		return nil, err
	}
	return toContentDomain(&model), nil
}

// ListByProvider returns all content records for a provider, newest first.
func (r *GormContentRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*contentDomain.Content, error) {
	var models []ContentModel
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("published_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*contentDomain.Content, len(models))
	for i := range models {
		records[i] = toContentDomain(&models[i])
	}
	return records, nil
}

func toContentModel(c *contentDomain.Content) ContentModel {
	return ContentModel{
		ID:          c.ID(),
		ProviderID:  c.ProviderID(),
		ContentID:   c.ContentID(),
		ContentHash: c.ContentHash(),
		ContentType: string(c.ContentType()),
		PublishedAt: c.PublishedAt(),
	}
}

func toContentDomain(m *ContentModel) *contentDomain.Content {
	return contentDomain.Reconstruct(
		m.ID, m.ProviderID,
		m.ContentID, m.ContentHash,
		contentDomain.ContentType(m.ContentType),
		m.PublishedAt,
	)
}
