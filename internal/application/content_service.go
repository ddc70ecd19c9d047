package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contentDomain "github.com/creatorgate/service-subscription/internal/domain/content"
	providerDomain "github.com/creatorgate/service-subscription/internal/domain/provider"
	"github.com/creatorgate/service-subscription/internal/events"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
	"github.com/creatorgate/service-subscription/internal/platform/kafka"
)

// PublishContentRequest holds data to publish a content record.
type PublishContentRequest struct {
	ContentID   string `json:"content_id" binding:"required,max=64"`
	ContentHash string `json:"content_hash" binding:"required,max=64"`
	ContentType string `json:"content_type" binding:"required"`
}

// ContentDTO is the API response for a content record.
type ContentDTO struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	ContentID   string    `json:"content_id"`
	ContentHash string    `json:"content_hash"`
	ContentType string    `json:"content_type"`
	PublishedAt time.Time `json:"published_at"`
}

// ContentService handles the content catalog use cases.
type ContentService struct {
	contentRepo  contentDomain.ContentRepository
	providerRepo providerDomain.ProviderRepository
	producer     kafka.EventPublisher
	clock        clock.Clock
	logger       *zap.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(
	contentRepo contentDomain.ContentRepository,
	providerRepo providerDomain.ProviderRepository,
	producer kafka.EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		providerRepo: providerRepo,
		producer:     producer,
		clock:        clk,
		logger:       logger,
	}
}

// Publish appends an immutable content record for a provider. Only the
// provider's registered authority may publish.
func (s *ContentService) Publish(ctx context.Context, providerID, authority uuid.UUID, req PublishContentRequest) (*ContentDTO, error) {
	prov, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if prov.Authority() != authority {
		return nil, platformdomain.NewUnauthorizedError("only the provider authority may publish content")
	}

	contentType, err := contentDomain.ParseContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	record, err := contentDomain.NewContent(providerID, req.ContentID, req.ContentHash, contentType, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.contentRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("content published",
		zap.String("record_id", record.ID().String()),
		zap.String("provider_id", providerID.String()),
		zap.String("content_id", record.ContentID()),
	)

	s.publishEvent(ctx, record)
	return toContentDTO(record), nil
}

// GetContent returns a content record by its record id.
func (s *ContentService) GetContent(ctx context.Context, recordID uuid.UUID) (*ContentDTO, error) {
	record, err := s.contentRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return toContentDTO(record), nil
}

// ListByProvider returns all content records published by a provider.
func (s *ContentService) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]ContentDTO, error) {
	records, err := s.contentRepo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ContentDTO, len(records))
	for i, record := range records {
		dtos[i] = *toContentDTO(record)
	}
	return dtos, nil
}

func (s *ContentService) publishEvent(ctx context.Context, record *contentDomain.Content) {
	event := events.ContentPublishedEvent{
		RecordID:    record.ID(),
		ProviderID:  record.ProviderID(),
		ContentID:   record.ContentID(),
		ContentHash: record.ContentHash(),
		ContentType: string(record.ContentType()),
		OccurredAt:  s.clock.Now(),
	}
	cloudEvent, err := kafka.NewCloudEvent("service-subscription", events.ContentPublished, event)
	if err != nil {
		s.logger.Error("failed to create content published event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicSubscriptionEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish content published event", zap.Error(err))
	}
}

func toContentDTO(c *contentDomain.Content) *ContentDTO {
	return &ContentDTO{
		ID:          c.ID(),
		ProviderID:  c.ProviderID(),
		ContentID:   c.ContentID(),
		ContentHash: c.ContentHash(),
		ContentType: string(c.ContentType()),
		PublishedAt: c.PublishedAt(),
	}
}
