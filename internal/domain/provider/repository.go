package provider

import (
	"context"

	"github.com/google/uuid"
)

// ProviderRepository defines persistence operations for providers.
type ProviderRepository interface {
	Save(ctx context.Context, p *Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)
}
