package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	ctx := context.Background()
	c := &FakeCache{}
	require.Panics(t, func() { c.Get(ctx, "k") })
	require.Panics(t, func() { c.Set(ctx, "k", 1, 0) })
	require.Panics(t, func() { c.Del(ctx, "k") })
	require.Equal(t, "PONG", c.Ping(ctx).Val())
	require.NoError(t, c.Close())

	gCalled := false
	sCalled := false
	var deleted []string
	c.GetFn = func(ctx context.Context, key string) *redis.StringCmd {
		gCalled = true
		return redis.NewStringResult("v", nil)
	}
	c.SetFn = func(ctx context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
		sCalled = true
		return redis.NewStatusResult("OK", nil)
	}
	c.DelFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		deleted = keys
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	c.PingFn = func(ctx context.Context) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("down"))
	}
	c.CloseFn = func() error { return errors.New("close") }

	require.Equal(t, "v", c.Get(ctx, "k").Val())
	require.Equal(t, "OK", c.Set(ctx, "k", 1, 0).Val())
	require.Equal(t, int64(2), c.Del(ctx, "a", "b").Val())
	require.Error(t, c.Ping(ctx).Err())
	require.EqualError(t, c.Close(), "close")
	require.True(t, gCalled)
	require.True(t, sCalled)
	require.Equal(t, []string{"a", "b"}, deleted)
}
