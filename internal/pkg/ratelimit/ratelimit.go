// Package ratelimit throttles repeated attempts per key, such as logins from
// one client address.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type Limiter interface {
	// Allow records one attempt for key. When the attempt is over the limit
	// it reports false and how long the caller should wait.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// MemoryLimiter keeps a token bucket per key in process memory.
type MemoryLimiter struct {
	limit    rate.Limit
	burst    int
	limiters sync.Map // map[string]*rate.Limiter

	mu          sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter allows attempts per window, all available as a burst.
func NewMemoryLimiter(attempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:       rate.Limit(float64(attempts) / window.Seconds()),
		burst:       attempts,
		lastCleanup: time.Now(),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	limiter := l.get(key)
	if limiter.Allow() {
		return true, 0, nil
	}

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()
	return false, delay, nil
}

func (l *MemoryLimiter) get(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	l.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops buckets that have refilled completely.
func (l *MemoryLimiter) maybeCleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastCleanup) < 5*time.Minute {
		return
	}
	l.lastCleanup = time.Now()

	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

// RedisLimiter counts attempts in fixed windows shared by every instance.
type RedisLimiter struct {
	client   *redis.Client
	attempts int64
	window   time.Duration
	prefix   string
}

func NewRedisLimiter(client *redis.Client, attempts int, window time.Duration, prefix string) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		attempts: int64(attempts),
		window:   window,
		prefix:   prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, fmt.Errorf("rate limit %s: %w", k, err)
	}

	if incr.Val() <= l.attempts {
		return true, 0, nil
	}

	wait := ttl.Val()
	if wait <= 0 {
		wait = l.window
	}
	return false, wait, nil
}
