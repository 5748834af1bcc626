package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("round-trip-secret", time.Hour)

	token, err := tm.GenerateToken(42, "jane@example.com", "admin")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("expiry-secret", -time.Minute)

	token, err := tm.GenerateToken(1, "jane@example.com", "customer")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken(1, "jane@example.com", "customer")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	tm := NewTokenManager("garbage-secret", time.Hour)

	_, err := tm.ValidateToken("definitely.not.ajwt")
	assert.Error(t, err)
}
