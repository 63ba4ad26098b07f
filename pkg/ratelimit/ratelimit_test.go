package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, max int, window time.Duration) (*miniredis.Miniredis, *Limiter) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return mr, New(rdb, max, window)
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	_, l := setupTestRedis(t, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4:/auth/login")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "1.2.3.4:/auth/login")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	_, l := setupTestRedis(t, 1, time.Hour)
	ctx := context.Background()

	res, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_WindowExpires(t *testing.T) {
	mr, l := setupTestRedis(t, 1, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, "k")
	require.NoError(t, err)

	res, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	mr.FastForward(2 * time.Minute)

	res, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_Allow_SetsTTL(t *testing.T) {
	mr, l := setupTestRedis(t, 3, time.Minute)

	_, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)

	ttl := mr.TTL(keyPrefix + "k")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestLimiter_Allow_RepairsMissingTTL(t *testing.T) {
	mr, l := setupTestRedis(t, 3, time.Minute)

	// A counter left past max with no expiry
	require.NoError(t, mr.Set(keyPrefix+"k", "5"))
	assert.Equal(t, time.Duration(0), mr.TTL(keyPrefix+"k"))

	res, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Minute, res.RetryAfter)
	assert.Greater(t, mr.TTL(keyPrefix+"k"), time.Duration(0))

	mr.FastForward(2 * time.Minute)

	res, err = l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_NilAllows(t *testing.T) {
	l := New(nil, 1, time.Hour)
	assert.Nil(t, l)

	res, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
