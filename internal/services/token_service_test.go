package services

import (
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	clock := newFakeClock()
	tokens := NewTokenService("test-secret", 5*time.Minute, 24*time.Hour, clock)
	user := testUser(7, "a@example.com", "Alice")

	pair, err := tokens.GeneratePair(&user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	t.Run("access token", func(t *testing.T) {
		claims, err := tokens.Parse(pair.Access, TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "a@example.com", claims.Email)
		assert.Equal(t, "7", claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := tokens.Parse(pair.Refresh, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = tokens.Parse(pair.Access, TokenTypeRefresh)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other := NewTokenService("other-secret", 5*time.Minute, 24*time.Hour, clock)
		_, err := other.Parse(pair.Access, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token", TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_Expiry(t *testing.T) {
	clock := newFakeClock()
	tokens := NewTokenService("test-secret", 5*time.Minute, time.Hour, clock)
	user := models.User{Email: "a@example.com"}
	user.ID = 1

	pair, err := tokens.GeneratePair(&user)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = tokens.Parse(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse(pair.Refresh, TokenTypeRefresh)
	assert.NoError(t, err)
}
