package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// RateLimiter is a fixed-window per-key counter backed by redis, shared
// between instances.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, requestsPerWindow int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: requestsPerWindow, window: window}
}

// Allow increments the counter for key and reports whether it is still under
// the limit. Redis being down fails open: blocking all traffic on a cache
// outage is worse than briefly losing rate limiting.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return true, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return count <= int64(rl.limit), nil
}
