package charge

import (
	"context"
)

// ChargeRepository defines read operations for the charge audit trail.
// Charges are written through the subscription repository inside the same
// transaction as the ledger mutation they account for.
type ChargeRepository interface {
	// ListAll returns all charges with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Charge, int64, error)

	// GetRevenueStats returns the total charged amount and a per-kind count (admin).
	GetRevenueStats(ctx context.Context) (totalCents int64, countByKind map[string]int64, err error)
}
