package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter counts requests per caller in fixed one-minute windows. The
// counter lives in Redis so every server instance shares the same window.
type RateLimiter struct {
	client *Client
	limit  int64
}

// NewRateLimiter creates a rate limiter allowing requestsPerMinute plus a
// burst allowance within each window.
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(requestsPerMinute + burst),
	}
}

// Allow records one request for key and reports whether it fits the current
// window, along with the remaining allowance and the window reset time.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowEnd := time.Now().Truncate(time.Minute).Add(time.Minute)
	counterKey := rateLimitPrefix + key

	pipe := r.client.rdb.Pipeline()
	count := pipe.Incr(ctx, counterKey)
	// The expiry is set only when INCR created the key, so the window is
	// anchored to the first request in it.
	pipe.ExpireNX(ctx, counterKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, time.Time{}, fmt.Errorf("failed to count request: %w", err)
	}

	taken := count.Val()
	remaining := r.limit - taken
	if remaining < 0 {
		remaining = 0
	}

	return taken <= r.limit, int(remaining), windowEnd, nil
}
