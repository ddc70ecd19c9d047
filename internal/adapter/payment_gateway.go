package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway moves a fixed amount between two identities as a unit: the
// transfer either settles fully or fails with no effect. The ledger commits
// only after a successful transfer.
type PaymentGateway interface {
	// Transfer moves amountCents from one identity to another and returns a
	// gateway reference for the settled transfer.
	Transfer(ctx context.Context, from, to uuid.UUID, amountCents int64) (ref string, err error)

	// Reverse undoes a previously settled transfer, identified by its reference.
	// Used only as saga compensation when the ledger commit fails after payment.
	Reverse(ctx context.Context, ref string) error
}

// MockPaymentGateway is a development/testing gateway. Outcomes are programmable
// so the subscription ledger can be tested deterministically.
type MockPaymentGateway struct {
	mu       sync.Mutex
	logger   *zap.Logger
	failNext error
}

// NewMockPaymentGateway creates a gateway that settles every transfer.
func NewMockPaymentGateway(logger *zap.Logger) *MockPaymentGateway {
	return &MockPaymentGateway{logger: logger}
}

// FailWith makes every subsequent Transfer fail with err until cleared with nil.
func (m *MockPaymentGateway) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// Transfer settles or fails per the programmed outcome.
func (m *MockPaymentGateway) Transfer(ctx context.Context, from, to uuid.UUID, amountCents int64) (string, error) {
	m.mu.Lock()
	failErr := m.failNext
	m.mu.Unlock()

	if failErr != nil {
		return "", failErr
	}

	ref := fmt.Sprintf("tr_mock_%s", uuid.New().String()[:8])
	m.logger.Info("[MOCK GATEWAY] transfer settled",
		zap.String("ref", ref),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Int64("amount_cents", amountCents),
	)
	return ref, nil
}

// Reverse simulates undoing a settled transfer.
func (m *MockPaymentGateway) Reverse(ctx context.Context, ref string) error {
	m.logger.Info("[MOCK GATEWAY] transfer reversed", zap.String("ref", ref))
	return nil
}
