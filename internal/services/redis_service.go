package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"social-service/internal/database"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{
		client: client,
	}
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit records one hit for key in a sorted set and reports whether fewer than
// limit hits were already recorded inside the sliding window.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixNano()

	pipe := r.client.GetClient().Pipeline()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	// Count current entries
	card := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})

	// Set expiration
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.Error("Rate limit pipeline failed", "key", key, "error", err)
		return false, err
	}

	return card.Val() < int64(limit), nil
}

func (r *RedisService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
