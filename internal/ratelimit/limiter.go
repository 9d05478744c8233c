// Package ratelimit implements the blunt abuse guard applied ahead of the
// realtime core. It is a correctness-free fixed window: bursts inside one
// window share a single redis counter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type redisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limiter unavailable: %w", err)
	}

	return count.Val() <= int64(l.limit), nil
}
