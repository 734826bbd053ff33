package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWindow(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	client, err := NewClient("localhost:6379", "", 1)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	addr := "203.0.113.7"
	require.NoError(t, client.ClearLoginAttempts(ctx, addr))

	// limit of 3 attempts per window
	for i := 0; i < 3; i++ {
		allowed, _, err := client.RecordLoginAttempt(ctx, addr, time.Minute, 3)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should pass", i+1)
	}

	allowed, retryAfter, err := client.RecordLoginAttempt(ctx, addr, time.Minute, 3)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// a reset frees the window immediately
	require.NoError(t, client.ClearLoginAttempts(ctx, addr))
	allowed, _, err = client.RecordLoginAttempt(ctx, addr, time.Minute, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestProductCache(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	client, err := NewClient("localhost:6379", "", 1)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()

	require.NoError(t, client.CacheProduct(ctx, "p-1", []byte(`{"name":"Widget"}`), time.Minute))

	payload, err := client.GetCachedProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"Widget"}`), payload)

	require.NoError(t, client.InvalidateProduct(ctx, "p-1"))

	payload, err = client.GetCachedProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, payload)
}
