package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "rate_limit:"

// Result reports the outcome of a single hit
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window request counter stored in Redis.
// A nil *Limiter allows every request.
type Limiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// New creates a limiter allowing max hits per window for each key
func New(rdb *redis.Client, max int, window time.Duration) *Limiter {
	if rdb == nil {
		return nil
	}
	return &Limiter{rdb: rdb, max: max, window: window}
}

// Allow records a hit for key and reports whether it fits in the current window
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if l == nil {
		return Result{Allowed: true}, nil
	}

	k := keyPrefix + key
	var incr *redis.IntCmd
	var ttlCmd *redis.DurationCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttlCmd = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}
	count := int(incr.Val())
	ttl := ttlCmd.Val()

	// A counter without expiry is given one, whether it is new or a previous EXPIRE was lost
	if ttl < 0 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = l.window
	}

	if count <= l.max {
		return Result{Allowed: true, Remaining: l.max - count}, nil
	}
	return Result{Allowed: false, RetryAfter: ttl}, nil
}
