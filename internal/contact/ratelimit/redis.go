package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "contact:rl:" // contact:rl:{client}

// RedisLimiter is a fixed-window counter shared by every instance pointing
// at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count submission: %w", err)
	}

	// first hit of a window, or a key that lost its expiry
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	return incr.Val() <= int64(l.limit), nil
}
