package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	providerDomain "github.com/creatorgate/service-subscription/internal/domain/provider"
	subDomain "github.com/creatorgate/service-subscription/internal/domain/subscription"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
	"github.com/creatorgate/service-subscription/internal/saga"
)

// OpenSubscriptionRequest holds data to open a subscription. StartTime may lie
// in the future to pre-schedule the window; when omitted it defaults to now.
type OpenSubscriptionRequest struct {
	ProviderID uuid.UUID  `json:"provider_id" binding:"required"`
	StartTime  *time.Time `json:"start_time,omitempty"`
}

// SubscriptionDTO is the API response for a subscription.
type SubscriptionDTO struct {
	ID           uuid.UUID `json:"id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	LastPayment  time.Time `json:"last_payment"`
	AutoRenewal  bool      `json:"auto_renewal"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscriptionService handles the subscription ledger use cases.
type SubscriptionService struct {
	subRepo      subDomain.SubscriptionRepository
	providerRepo providerDomain.ProviderRepository
	sagaSvc      *saga.SubscriptionSagaService
	clock        clock.Clock
	logger       *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subRepo subDomain.SubscriptionRepository,
	providerRepo providerDomain.ProviderRepository,
	sagaSvc *saga.SubscriptionSagaService,
	clk clock.Clock,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:      subRepo,
		providerRepo: providerRepo,
		sagaSvc:      sagaSvc,
		clock:        clk,
		logger:       logger,
	}
}

// Open opens a paid subscription for the caller against a provider.
func (s *SubscriptionService) Open(ctx context.Context, subscriberID uuid.UUID, req OpenSubscriptionRequest) (*SubscriptionDTO, error) {
	prov, err := s.providerRepo.FindByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	// One subscription per (provider, subscriber) pair. The unique index on the
	// table backstops this check against concurrent opens.
	if _, err := s.subRepo.FindByPair(ctx, req.ProviderID, subscriberID); err == nil {
		return nil, platformdomain.NewDuplicateSubscriptionError("subscription already exists for this provider")
	}

	start := s.clock.Now()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}

	sub, err := s.sagaSvc.OpenSubscription(ctx, prov, subscriberID, start)
	if err != nil {
		s.logger.Error("failed to open subscription",
			zap.String("provider_id", req.ProviderID.String()),
			zap.String("subscriber_id", subscriberID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("subscription opened",
		zap.String("subscription_id", sub.ID().String()),
		zap.String("provider_id", req.ProviderID.String()),
		zap.String("subscriber_id", subscriberID.String()),
	)
	return toSubDTO(sub), nil
}

// Renew renews the caller's subscription against the given provider.
func (s *SubscriptionService) Renew(ctx context.Context, subscriberID, providerID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.subRepo.FindByPair(ctx, providerID, subscriberID)
	if err != nil {
		return nil, err
	}

	prov, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	renewed, err := s.sagaSvc.RenewSubscription(ctx, prov, sub)
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription renewed",
		zap.String("subscription_id", renewed.ID().String()),
		zap.Time("start_time", renewed.StartTime()),
		zap.Time("end_time", renewed.EndTime()),
	)
	return toSubDTO(renewed), nil
}

// ProcessRenewal renews one (provider, subscriber) pair on behalf of the
// billing trigger. Same semantics as Renew.
func (s *SubscriptionService) ProcessRenewal(ctx context.Context, providerID, subscriberID uuid.UUID) error {
	_, err := s.Renew(ctx, subscriberID, providerID)
	return err
}

// ToggleAutoRenewal flips the caller's auto-renewal flag. No payment or time effect.
func (s *SubscriptionService) ToggleAutoRenewal(ctx context.Context, callerID, providerID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.subRepo.FindByPair(ctx, providerID, callerID)
	if err != nil {
		return nil, err
	}

	if err := sub.ToggleAutoRenewal(callerID, s.clock.Now()); err != nil {
		return nil, err
	}
	sub.IncrementVersion()

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("auto-renewal toggled",
		zap.String("subscription_id", sub.ID().String()),
		zap.Bool("auto_renewal", sub.AutoRenewal()),
	)
	return toSubDTO(sub), nil
}

// GetSubscription returns the caller's subscription for a provider.
func (s *SubscriptionService) GetSubscription(ctx context.Context, subscriberID, providerID uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.subRepo.FindByPair(ctx, providerID, subscriberID)
	if err != nil {
		return nil, err
	}
	return toSubDTO(sub), nil
}

// ProcessDueRenewals renews expired auto-renewing subscriptions in one sweep.
// Per-record failures are logged and skipped so one bad record cannot stall
// the rest of the batch. Returns the number of successful renewals.
func (s *SubscriptionService) ProcessDueRenewals(ctx context.Context, limit int) (int, error) {
	due, err := s.subRepo.FindDueForRenewal(ctx, s.clock.Now(), limit)
	if err != nil {
		return 0, err
	}

	renewed := 0
	for _, sub := range due {
		prov, err := s.providerRepo.FindByID(ctx, sub.ProviderID())
		if err != nil {
			s.logger.Error("renewal sweep: provider lookup failed",
				zap.String("provider_id", sub.ProviderID().String()),
				zap.Error(err),
			)
			continue
		}

		if _, err := s.sagaSvc.RenewSubscription(ctx, prov, sub); err != nil {
			s.logger.Warn("renewal sweep: renewal failed",
				zap.String("subscription_id", sub.ID().String()),
				zap.Error(err),
			)
			continue
		}
		renewed++
	}

	if len(due) > 0 {
		s.logger.Info("renewal sweep completed",
			zap.Int("due", len(due)),
			zap.Int("renewed", renewed),
		)
	}
	return renewed, nil
}

// ListAllSubscriptions returns a paginated list of all subscriptions (admin).
func (s *SubscriptionService) ListAllSubscriptions(ctx context.Context, page, limit int) ([]SubscriptionDTO, int64, error) {
	subs, total, err := s.subRepo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]SubscriptionDTO, len(subs))
	for i, sub := range subs {
		dtos[i] = *toSubDTO(sub)
	}
	return dtos, total, nil
}

func toSubDTO(sub *subDomain.Subscription) *SubscriptionDTO {
	return &SubscriptionDTO{
		ID:           sub.ID(),
		ProviderID:   sub.ProviderID(),
		SubscriberID: sub.SubscriberID(),
		StartTime:    sub.StartTime(),
		EndTime:      sub.EndTime(),
		LastPayment:  sub.LastPayment(),
		AutoRenewal:  sub.AutoRenewal(),
		CreatedAt:    sub.CreatedAt(),
	}
}
