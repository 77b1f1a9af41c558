package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(42, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(42, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestMalformedTokenRejected(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("test-secret"))
	assert.Error(t, err)
}

func TestExpiryAndForgeryIndistinguishable(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateToken(1, secret, -time.Minute)
	require.NoError(t, err)
	forged, err := GenerateToken(1, []byte("other"), time.Hour)
	require.NoError(t, err)

	_, expiredErr := ParseToken(expired, secret)
	_, forgedErr := ParseToken(forged, secret)
	assert.Equal(t, expiredErr, forgedErr)
}
