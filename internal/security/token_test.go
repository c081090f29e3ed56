package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-that-is-long-enough-for-hmac", 15, 60)

	access, err := tm.GenerateAccessToken(7, "u@test.com")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "u@test.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "honeycomb", claims.Issuer)

	refresh, err := tm.GenerateRefreshToken(7, "u@test.com")
	assert.NoError(t, err)

	claims, err = tm.ValidateToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("test-secret-that-is-long-enough-for-hmac", 15, 60)
	other := NewTokenManager("a-completely-different-secret-also-long!", 15, 60)

	token, err := tm.GenerateAccessToken(7, "u@test.com")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredRejected(t *testing.T) {
	tm := &tokenManager{
		secret:        []byte("test-secret-that-is-long-enough-for-hmac"),
		accessExpiry:  -time.Minute,
		refreshExpiry: time.Hour,
	}

	token, err := tm.GenerateAccessToken(7, "u@test.com")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_GarbageRejected(t *testing.T) {
	tm := NewTokenManager("test-secret-that-is-long-enough-for-hmac", 15, 60)
	_, err := tm.ValidateToken("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
