package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := CreateToken(userID, "demo@example.com", "customer", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "demo@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := CreateToken(uuid.New(), "demo@example.com", "customer", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := CreateToken(uuid.New(), "demo@example.com", "customer", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "test-secret")
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword("hunter22", hash))
	assert.False(t, VerifyPassword("hunter23", hash))
}
