package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

func TestProviderService(t *testing.T) {
	ctx := context.Background()

	newService := func() *ProviderService {
		return NewProviderService(newFakeProviderRepo(), clock.NewFixed(testEpoch), zap.NewNop())
	}

	t.Run("registers an offer owned by the caller", func(t *testing.T) {
		svc := newService()
		authority := uuid.New()

		dto, err := svc.Register(ctx, authority, RegisterProviderRequest{PriceCents: 100, DurationSeconds: 2_592_000})
		require.NoError(t, err)

		assert.Equal(t, authority, dto.Authority)
		assert.Equal(t, int64(100), dto.PriceCents)
		assert.Equal(t, int64(2_592_000), dto.DurationSeconds)
		assert.Zero(t, dto.TotalSubscribers)

		got, err := svc.GetProvider(ctx, dto.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.ID, got.ID)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		svc := newService()

		_, err := svc.Register(ctx, uuid.New(), RegisterProviderRequest{PriceCents: 100, DurationSeconds: 0})
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrInvalidConfiguration)
	})

	t.Run("unknown provider yields not found", func(t *testing.T) {
		svc := newService()

		_, err := svc.GetProvider(ctx, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrNotFound)
	})
}
