package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contentDomain "github.com/creatorgate/service-subscription/internal/domain/content"
	subDomain "github.com/creatorgate/service-subscription/internal/domain/subscription"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// AccessDecisionDTO is the API response for a granted access check.
type AccessDecisionDTO struct {
	Granted     bool      `json:"granted"`
	RecordID    uuid.UUID `json:"record_id"`
	ContentID   string    `json:"content_id"`
	ContentHash string    `json:"content_hash"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CheckedAt   time.Time `json:"checked_at"`
}

// AccessService is the read-time access gate. It holds no mutable state: every
// check is a pure predicate over the subscription window and the clock, so it
// is safely retryable.
type AccessService struct {
	contentRepo contentDomain.ContentRepository
	subRepo     subDomain.SubscriptionRepository
	clock       clock.Clock
	logger      *zap.Logger
}

// NewAccessService creates a new AccessService.
func NewAccessService(
	contentRepo contentDomain.ContentRepository,
	subRepo subDomain.SubscriptionRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		contentRepo: contentRepo,
		subRepo:     subRepo,
		clock:       clk,
		logger:      logger,
	}
}

// CheckAccess grants iff the caller's subscription to the content's provider
// covers the current instant, boundaries included.
func (s *AccessService) CheckAccess(ctx context.Context, recordID, callerID uuid.UUID) (*AccessDecisionDTO, error) {
	record, err := s.contentRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByPair(ctx, record.ProviderID(), callerID)
	if err != nil {
		return nil, err
	}

	// The pair lookup already pins subscriber and provider; assert anyway so a
	// repository bug cannot silently widen access.
	if sub.SubscriberID() != callerID || sub.ProviderID() != record.ProviderID() {
		return nil, platformdomain.NewUnauthorizedError("subscription does not match caller and provider")
	}

	now := s.clock.Now()
	if !sub.ActiveAt(now) {
		return nil, platformdomain.NewInactiveSubscriptionError("subscription window does not cover the current time")
	}

	return &AccessDecisionDTO{
		Granted:     true,
		RecordID:    record.ID(),
		ContentID:   record.ContentID(),
		ContentHash: record.ContentHash(),
		StartTime:   sub.StartTime(),
		EndTime:     sub.EndTime(),
		CheckedAt:   now,
	}, nil
}
