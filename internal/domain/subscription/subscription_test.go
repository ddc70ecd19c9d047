package subscription

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

var epoch = time.Unix(0, 0).UTC()

func at(sec int64) time.Time { return epoch.Add(time.Duration(sec) * time.Second) }

func TestNewSubscription(t *testing.T) {
	subscriber := uuid.New()
	provider := uuid.New()
	duration := 2_592_000 * time.Second // 30 days

	t.Run("opens a window of exactly one duration starting at start", func(t *testing.T) {
		sub, err := NewSubscription(subscriber, provider, at(1000), duration, at(1000))
		require.NoError(t, err)

		assert.Equal(t, at(1000), sub.StartTime())
		assert.Equal(t, at(2_593_000), sub.EndTime())
		assert.Equal(t, at(1000), sub.LastPayment())
		assert.True(t, sub.AutoRenewal(), "auto-renewal must default to enabled")
		assert.Equal(t, int64(1), sub.Version())
	})

	t.Run("allows a start in the future", func(t *testing.T) {
		sub, err := NewSubscription(subscriber, provider, at(5000), duration, at(1000))
		require.NoError(t, err)

		assert.Equal(t, at(5000), sub.StartTime())
		assert.Equal(t, at(5000).Add(duration), sub.EndTime())
		assert.False(t, sub.ActiveAt(at(1000)), "future window must not grant access yet")
	})

	t.Run("rejects a start in the past, even by one second", func(t *testing.T) {
		_, err := NewSubscription(subscriber, provider, at(999), duration, at(1000))
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrInvalidStartTime)
	})
}

func TestSubscriptionRenew(t *testing.T) {
	subscriber := uuid.New()
	provider := uuid.New()
	duration := 2_592_000 * time.Second

	open := func(t *testing.T) *Subscription {
		t.Helper()
		sub, err := NewSubscription(subscriber, provider, at(1000), duration, at(1000))
		require.NoError(t, err)
		return sub
	}

	t.Run("chains the new window from the old end time", func(t *testing.T) {
		sub := open(t)

		// Renew shortly after expiry: the window starts where the old one
		// ended, not at the renewal instant.
		require.NoError(t, sub.Renew(duration, at(2_600_000)))

		assert.Equal(t, at(2_593_000), sub.StartTime())
		assert.Equal(t, at(5_185_000), sub.EndTime())
		assert.Equal(t, at(2_600_000), sub.LastPayment())
	})

	t.Run("late renewal advances exactly one duration, never catches up", func(t *testing.T) {
		sub := open(t)

		// Renew long after several windows have elapsed.
		require.NoError(t, sub.Renew(duration, at(20_000_000)))

		assert.Equal(t, at(2_593_000), sub.StartTime())
		assert.Equal(t, at(5_185_000), sub.EndTime())
		assert.False(t, sub.ActiveAt(at(20_000_000)), "new window can itself already be in the past")
	})

	t.Run("renewal at the exact end instant is permitted", func(t *testing.T) {
		sub := open(t)
		require.NoError(t, sub.Renew(duration, at(2_593_000)))
		assert.Equal(t, at(5_185_000), sub.EndTime())
	})

	t.Run("rejects renewal while the window is still running", func(t *testing.T) {
		sub := open(t)
		err := sub.Renew(duration, at(2_592_999))
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrSubscriptionStillActive)
		assert.Equal(t, at(1000), sub.StartTime(), "failed renewal must not mutate the window")
	})

	t.Run("rejects renewal when auto-renewal is disabled", func(t *testing.T) {
		sub := open(t)
		require.NoError(t, sub.ToggleAutoRenewal(subscriber, at(2000)))

		err := sub.Renew(duration, at(3_000_000))
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrAutoRenewalDisabled)
	})

	t.Run("disabled flag wins over still-active when both apply", func(t *testing.T) {
		sub := open(t)
		require.NoError(t, sub.ToggleAutoRenewal(subscriber, at(2000)))

		err := sub.Renew(duration, at(5000))
		assert.ErrorIs(t, err, platformdomain.ErrAutoRenewalDisabled)
	})
}

func TestSubscriptionToggleAutoRenewal(t *testing.T) {
	subscriber := uuid.New()
	provider := uuid.New()

	sub, err := NewSubscription(subscriber, provider, at(1000), time.Hour, at(1000))
	require.NoError(t, err)

	t.Run("only the subscriber may toggle", func(t *testing.T) {
		err := sub.ToggleAutoRenewal(uuid.New(), at(2000))
		require.Error(t, err)
		assert.ErrorIs(t, err, platformdomain.ErrUnauthorized)
		assert.True(t, sub.AutoRenewal())
	})

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		require.NoError(t, sub.ToggleAutoRenewal(subscriber, at(2000)))
		assert.False(t, sub.AutoRenewal())

		require.NoError(t, sub.ToggleAutoRenewal(subscriber, at(3000)))
		assert.True(t, sub.AutoRenewal())
	})

	t.Run("toggle does not shift the access window", func(t *testing.T) {
		require.NoError(t, sub.ToggleAutoRenewal(subscriber, at(4000)))
		assert.Equal(t, at(1000), sub.StartTime())
		assert.Equal(t, at(4600), sub.EndTime())
	})
}

func TestSubscriptionActiveAt(t *testing.T) {
	sub, err := NewSubscription(uuid.New(), uuid.New(), at(1000), 999*time.Second, at(1000))
	require.NoError(t, err)

	cases := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"before the window", at(999), false},
		{"at the start boundary", at(1000), true},
		{"inside the window", at(1500), true},
		{"at the end boundary", at(1999), true},
		{"after the window", at(2000), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, sub.ActiveAt(tc.now))
		})
	}
}

func TestReconstructRoundTrip(t *testing.T) {
	id := uuid.New()
	subscriber := uuid.New()
	provider := uuid.New()

	sub := Reconstruct(id, subscriber, provider, at(1000), at(2000), at(1000), false, 3, at(900), at(1000))

	assert.Equal(t, id, sub.ID())
	assert.Equal(t, subscriber, sub.SubscriberID())
	assert.Equal(t, provider, sub.ProviderID())
	assert.False(t, sub.AutoRenewal())
	assert.Equal(t, int64(3), sub.Version())

	sub.IncrementVersion()
	assert.Equal(t, int64(4), sub.Version())
}
