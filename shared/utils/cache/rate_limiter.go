package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter counts attempts per key in fixed windows
type LoginRateLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

func NewLoginRateLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func rateLimitKey(key string) string {
	return "login:" + key
}

// Allow records one attempt for key and reports whether it is within the limit.
// A counter found without an expiry gets the window again, so a failed
// EXPIRE never leaves a key that blocks forever.
func (l *LoginRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitKey(key)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}

	// TTL reports -1 for a key that exists without an expiry
	if ttl.Val() == -1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}

	return incr.Val() <= int64(l.maxAttempts), nil
}
