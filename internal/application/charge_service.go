package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chargeDomain "github.com/creatorgate/service-subscription/internal/domain/charge"
)

// ChargeDTO is the API response for a charge audit record.
type ChargeDTO struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ProviderID     uuid.UUID `json:"provider_id"`
	SubscriberID   uuid.UUID `json:"subscriber_id"`
	AmountCents    int64     `json:"amount_cents"`
	Kind           string    `json:"kind"`
	GatewayRef     string    `json:"gateway_ref"`
	ChargedAt      time.Time `json:"charged_at"`
}

// ChargeStatsDTO holds aggregate charge statistics for the admin dashboard.
type ChargeStatsDTO struct {
	TotalCents   int64            `json:"total_cents"`
	TotalCharges int64            `json:"total_charges"`
	ByKind       map[string]int64 `json:"by_kind"`
}

// ChargeService exposes the charge audit trail (admin).
type ChargeService struct {
	repo   chargeDomain.ChargeRepository
	logger *zap.Logger
}

// NewChargeService creates a new ChargeService.
func NewChargeService(repo chargeDomain.ChargeRepository, logger *zap.Logger) *ChargeService {
	return &ChargeService{repo: repo, logger: logger}
}

// ListCharges returns a paginated list of charges.
func (s *ChargeService) ListCharges(ctx context.Context, page, limit int) ([]ChargeDTO, int64, error) {
	charges, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]ChargeDTO, len(charges))
	for i, c := range charges {
		dtos[i] = ChargeDTO{
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
	return dtos, total, nil
}

// GetChargeStats returns aggregate charge statistics.
func (s *ChargeService) GetChargeStats(ctx context.Context) (*ChargeStatsDTO, error) {
	total, counts, err := s.repo.GetRevenueStats(ctx)
	if err != nil {
		return nil, err
	}

	var count int64
	for _, c := range counts {
		count += c
	}

	return &ChargeStatsDTO{
		TotalCents:   total,
		TotalCharges: count,
		ByKind:       counts,
	}, nil
}
