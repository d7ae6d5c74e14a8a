package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	m := &tokenManager{secret: []byte("test-secret"), now: func() time.Time { return now }}

	t.Run("Access Token Round Trip", func(t *testing.T) {
		tok, exp, err := m.GenerateAccessToken("U1", "staff01", "STAFF")
		require.NoError(t, err)
		assert.Equal(t, now.Add(AccessTokenTTL), exp)

		claims, err := m.ValidateToken(tok, TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "U1", claims.Subject)
		assert.Equal(t, "staff01", claims.Username)

		got, ok := ExpiryUnverified(tok)
		require.True(t, ok)
		assert.True(t, got.Equal(exp))
	})

	t.Run("Wrong Type", func(t *testing.T) {
		tok, err := m.GenerateRefreshToken("U1")
		require.NoError(t, err)
		_, err = m.ValidateToken(tok, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("Expired", func(t *testing.T) {
		tok, _, err := m.GenerateDeviceToken("D1")
		require.NoError(t, err)
		later := &tokenManager{secret: m.secret, now: func() time.Time { return now.Add(time.Hour) }}
		_, err = later.ValidateToken(tok, TokenTypeDevice)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Other Secret", func(t *testing.T) {
		tok, _, err := m.GenerateAccessToken("U1", "staff01", "STAFF")
		require.NoError(t, err)
		other := &tokenManager{secret: []byte("other"), now: m.now}
		_, err = other.ValidateToken(tok, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unverified Garbage", func(t *testing.T) {
		_, ok := ExpiryUnverified("not-a-jwt")
		assert.False(t, ok)
	})
}
