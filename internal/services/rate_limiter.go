package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter decides whether another hit for key is allowed.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

const defaultSweepInterval = time.Minute

type localBucket struct {
	limiter  *rate.Limiter
	window   time.Duration
	lastSeen time.Time
}

// LocalRateLimiter is an in-process token bucket per key, used when Redis is not
// configured. Limits are per process, not per deployment. A bucket idle for its whole
// window is full again, so it is dropped on the next sweep.
type LocalRateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*localBucket
	now        func() time.Time
	sweepEvery time.Duration
	lastSweep  time.Time
}

func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{
		buckets:    make(map[string]*localBucket),
		now:        time.Now,
		sweepEvery: defaultSweepInterval,
	}
}

func (l *LocalRateLimiter) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &localBucket{
			limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit),
			window:  window,
		}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1), nil
}

func (l *LocalRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.sweepEvery {
		return
	}
	l.lastSweep = now

	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= bucket.window {
			delete(l.buckets, key)
		}
	}
}

// Len reports how many keys are currently tracked.
func (l *LocalRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

var (
	_ RateLimiter = (*RedisService)(nil)
	_ RateLimiter = (*LocalRateLimiter)(nil)
)
