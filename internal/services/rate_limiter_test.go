package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRateLimiter(t *testing.T) {
	limiter := NewLocalRateLimiter()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.CheckRateLimit(ctx, "user:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.CheckRateLimit(ctx, "user:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.CheckRateLimit(ctx, "user:2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are limited independently")
}

func TestLocalRateLimiter_Disabled(t *testing.T) {
	limiter := NewLocalRateLimiter()
	for i := 0; i < 5; i++ {
		allowed, err := limiter.CheckRateLimit(context.Background(), "k", 0, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLocalRateLimiter_EvictsIdleKeys(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLocalRateLimiter()
	limiter.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := limiter.CheckRateLimit(ctx, fmt.Sprintf("ip:10.0.0.%d", i), 2, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 50, limiter.Len())

	allowed, err := limiter.CheckRateLimit(ctx, "ip:10.0.0.0", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = limiter.CheckRateLimit(ctx, "ip:10.0.0.0", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "bucket is exhausted before the sweep")

	clock.Advance(2 * time.Minute)
	allowed, err = limiter.CheckRateLimit(ctx, "ip:10.0.0.99", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, limiter.Len(), "idle keys are dropped")

	allowed, err = limiter.CheckRateLimit(ctx, "ip:10.0.0.0", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "an evicted key starts with a full bucket")
}

func TestLocalRateLimiter_KeepsActiveKeys(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLocalRateLimiter()
	limiter.now = clock.Now
	ctx := context.Background()

	_, err := limiter.CheckRateLimit(ctx, "user:1", 2, 10*time.Minute)
	require.NoError(t, err)
	_, err = limiter.CheckRateLimit(ctx, "user:1", 2, 10*time.Minute)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	allowed, err := limiter.CheckRateLimit(ctx, "user:2", 2, 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2, limiter.Len())

	allowed, err = limiter.CheckRateLimit(ctx, "user:1", 2, 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "a key inside its window keeps its state")
}
