package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterPrefix = "storefront:ratelimit:"

// FixedWindowLimiter counts hits per key in fixed windows.
// Key format: storefront:ratelimit:<key>
type FixedWindowLimiter struct {
	client  *redis.Client
	timeout time.Duration
}

// NewFixedWindowLimiter wraps the given Redis client.
func NewFixedWindowLimiter(client *redis.Client) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, timeout: 250 * time.Millisecond}
}

// Allow records a hit for key and reports whether it is within limit for the
// current window. The window starts with the first hit. The counter is
// created with its TTL and incremented in one MULTI/EXEC so a key can never
// outlive its window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	if window <= 0 {
		window = time.Minute
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := limiterPrefix + key
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("rate limit hit: %w", err)
	}
	return incr.Val() <= int64(limit), nil
}
