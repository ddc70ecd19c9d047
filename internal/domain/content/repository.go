package content

import (
	"context"

	"github.com/google/uuid"
)

// ContentRepository defines persistence operations for content records.
type ContentRepository interface {
	Save(ctx context.Context, c *Content) error
	FindByID(ctx context.Context, id uuid.UUID) (*Content, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Content, error)
}
