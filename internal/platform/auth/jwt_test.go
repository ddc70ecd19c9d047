package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute)

	t.Run("verifies a token it issued", func(t *testing.T) {
		userID := uuid.New()

		token, err := manager.Generate(userID, RoleAdmin)
		require.NoError(t, err)

		claims, err := manager.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", 15*time.Minute)
		token, err := other.Generate(uuid.New(), RoleUser)
		require.NoError(t, err)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(uuid.New(), RoleUser)
		require.NoError(t, err)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
