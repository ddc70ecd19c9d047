package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	providerDomain "github.com/creatorgate/service-subscription/internal/domain/provider"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
)

// RegisterProviderRequest holds data to register a provider offer.
type RegisterProviderRequest struct {
	PriceCents      int64 `json:"price_cents" binding:"min=0"`
	DurationSeconds int64 `json:"duration_seconds" binding:"required,gt=0"`
}

// ProviderDTO is the API response for a provider.
type ProviderDTO struct {
	ID               uuid.UUID `json:"id"`
	Authority        uuid.UUID `json:"authority"`
	PriceCents       int64     `json:"price_cents"`
	DurationSeconds  int64     `json:"duration_seconds"`
	TotalSubscribers int64     `json:"total_subscribers"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProviderService handles provider registry use cases.
type ProviderService struct {
	repo   providerDomain.ProviderRepository
	clock  clock.Clock
	logger *zap.Logger
}

// NewProviderService creates a new ProviderService.
func NewProviderService(repo providerDomain.ProviderRepository, clk clock.Clock, logger *zap.Logger) *ProviderService {
	return &ProviderService{repo: repo, clock: clk, logger: logger}
}

// Register creates a provider record owned by the calling authority.
func (s *ProviderService) Register(ctx context.Context, authority uuid.UUID, req RegisterProviderRequest) (*ProviderDTO, error) {
	p, err := providerDomain.NewProvider(authority, req.PriceCents, req.DurationSeconds, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("provider registered",
		zap.String("provider_id", p.ID().String()),
		zap.String("authority", authority.String()),
		zap.Int64("price_cents", req.PriceCents),
		zap.Int64("duration_seconds", req.DurationSeconds),
	)

	return toProviderDTO(p), nil
}

// GetProvider returns a provider by its ID.
func (s *ProviderService) GetProvider(ctx context.Context, id uuid.UUID) (*ProviderDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderDTO(p), nil
}

func toProviderDTO(p *providerDomain.Provider) *ProviderDTO {
	return &ProviderDTO{
		ID:               p.ID(),
		Authority:        p.Authority(),
		PriceCents:       p.PriceCents(),
		DurationSeconds:  p.DurationSeconds(),
		TotalSubscribers: p.TotalSubscribers(),
		CreatedAt:        p.CreatedAt(),
	}
}
