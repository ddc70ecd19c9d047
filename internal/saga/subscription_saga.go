package saga

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorgate/service-subscription/internal/adapter"
	"github.com/creatorgate/service-subscription/internal/domain/charge"
	"github.com/creatorgate/service-subscription/internal/domain/provider"
	"github.com/creatorgate/service-subscription/internal/domain/subscription"
	"github.com/creatorgate/service-subscription/internal/events"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
	"github.com/creatorgate/service-subscription/internal/platform/kafka"
)

const eventSource = "service-subscription"

// SubscriptionSagaService orchestrates the paid subscription workflows. The
// gateway transfer always precedes the ledger commit; if the commit fails the
// transfer is reversed, so neither "paid but not recorded" nor "recorded but
// not paid" survives a failure.
type SubscriptionSagaService struct {
	repo     subscription.SubscriptionRepository
	gateway  adapter.PaymentGateway
	producer kafka.EventPublisher
	clock    clock.Clock
	logger   *zap.Logger
}

// NewSubscriptionSagaService creates a new SubscriptionSagaService.
func NewSubscriptionSagaService(
	repo subscription.SubscriptionRepository,
	gateway adapter.PaymentGateway,
	producer kafka.EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *SubscriptionSagaService {
	return &SubscriptionSagaService{
		repo:     repo,
		gateway:  gateway,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
}

// OpenSubscription charges the subscriber and creates the subscription record.
func (s *SubscriptionSagaService) OpenSubscription(
	ctx context.Context,
	prov *provider.Provider,
	subscriberID uuid.UUID,
	start time.Time,
) (*subscription.Subscription, error) {
	now := s.clock.Now()

	sub, err := subscription.NewSubscription(subscriberID, prov.ID(), start, prov.Duration(), now)
	if err != nil {
		return nil, err
	}

	var gatewayRef string

	sg := NewSaga("open_subscription", s.logger)

	sg.AddStep(SagaStep{
		Name: "charge_subscriber",
		Execute: func(ctx context.Context) error {
			ref, err := s.gateway.Transfer(ctx, subscriberID, prov.Authority(), prov.PriceCents())
			if err != nil {
				return platformdomain.NewPaymentFailedError("payment gateway declined transfer: " + err.Error())
			}
			gatewayRef = ref
			return nil
		},
		Compensate: func(ctx context.Context) error {
			return s.gateway.Reverse(ctx, gatewayRef)
		},
	})

	sg.AddStep(SagaStep{
		Name: "commit_ledger",
		Execute: func(ctx context.Context) error {
			ch := charge.NewCharge(sub.ID(), prov.ID(), subscriberID, prov.PriceCents(), charge.KindOpen, gatewayRef, now)
			return s.repo.CreateWithCharge(ctx, sub, ch)
		},
		Compensate: nil,
	})

	if err := sg.Execute(ctx); err != nil {
		return nil, err
	}

	s.publishOpened(ctx, sub, prov.PriceCents())
	return sub, nil
}

// RenewSubscription charges the subscriber and chains the window one duration
// from the old end time.
func (s *SubscriptionSagaService) RenewSubscription(
	ctx context.Context,
	prov *provider.Provider,
	sub *subscription.Subscription,
) (*subscription.Subscription, error) {
	now := s.clock.Now()

	// Reject before touching the gateway: a disabled flag or a still-open
	// window must not trigger a transfer.
	if err := sub.CanRenew(now); err != nil {
		return nil, err
	}

	var gatewayRef string

	sg := NewSaga("renew_subscription", s.logger)

	sg.AddStep(SagaStep{
		Name: "charge_subscriber",
		Execute: func(ctx context.Context) error {
			ref, err := s.gateway.Transfer(ctx, sub.SubscriberID(), prov.Authority(), prov.PriceCents())
			if err != nil {
				return platformdomain.NewPaymentFailedError("payment gateway declined transfer: " + err.Error())
			}
			gatewayRef = ref
			return nil
		},
		Compensate: func(ctx context.Context) error {
			return s.gateway.Reverse(ctx, gatewayRef)
		},
	})

	sg.AddStep(SagaStep{
		Name: "commit_ledger",
		Execute: func(ctx context.Context) error {
			if err := sub.Renew(prov.Duration(), now); err != nil {
				return err
			}
			sub.IncrementVersion()
			ch := charge.NewCharge(sub.ID(), prov.ID(), sub.SubscriberID(), prov.PriceCents(), charge.KindRenewal, gatewayRef, now)
			return s.repo.UpdateWithCharge(ctx, sub, ch)
		},
		Compensate: nil,
	})

	if err := sg.Execute(ctx); err != nil {
		s.publishRenewalFailed(ctx, prov.ID(), sub.SubscriberID(), err.Error())
		return nil, err
	}

	s.publishRenewed(ctx, sub, prov.PriceCents())
	return sub, nil
}

// publishOpened publishes a SubscriptionOpenedEvent. Publishing is best-effort:
// the operation outcome is already committed.
func (s *SubscriptionSagaService) publishOpened(ctx context.Context, sub *subscription.Subscription, amountCents int64) {
	event := events.SubscriptionOpenedEvent{
		SubscriptionID: sub.ID(),
		ProviderID:     sub.ProviderID(),
		SubscriberID:   sub.SubscriberID(),
		StartTime:      sub.StartTime(),
		EndTime:        sub.EndTime(),
		AmountCents:    amountCents,
		OccurredAt:     s.clock.Now(),
	}
	s.publish(ctx, events.SubscriptionOpened, event)
}

func (s *SubscriptionSagaService) publishRenewed(ctx context.Context, sub *subscription.Subscription, amountCents int64) {
	event := events.SubscriptionRenewedEvent{
		SubscriptionID: sub.ID(),
		ProviderID:     sub.ProviderID(),
		SubscriberID:   sub.SubscriberID(),
		StartTime:      sub.StartTime(),
		EndTime:        sub.EndTime(),
		AmountCents:    amountCents,
		OccurredAt:     s.clock.Now(),
	}
	s.publish(ctx, events.SubscriptionRenewed, event)
}

func (s *SubscriptionSagaService) publishRenewalFailed(ctx context.Context, providerID, subscriberID uuid.UUID, reason string) {
	event := events.RenewalFailedEvent{
		ProviderID:   providerID,
		SubscriberID: subscriberID,
		Reason:       reason,
		OccurredAt:   s.clock.Now(),
	}
	s.publish(ctx, events.RenewalFailed, event)
}

func (s *SubscriptionSagaService) publish(ctx context.Context, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicSubscriptionEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
