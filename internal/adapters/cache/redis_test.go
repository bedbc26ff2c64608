package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedis(rdb, "test:", logger), mr
}

func TestRedisSetGetWithTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	c.Set(ctx, "weather:1", []byte(`{"temperature":12}`))

	got, ok := c.Get(ctx, "weather:1")
	require.True(t, ok)
	assert.JSONEq(t, `{"temperature":12}`, string(got))
	assert.True(t, c.Has(ctx, "weather:1"))
	assert.Equal(t, TTL, mr.TTL("test:weather:1"))

	mr.FastForward(TTL + time.Second)

	_, ok = c.Get(ctx, "weather:1")
	assert.False(t, ok)
	assert.False(t, c.Has(ctx, "weather:1"))
}

func TestRedisDeleteAndClearOnlyTouchPrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	require.NoError(t, mr.Set("other:c", "3"))

	c.Delete(ctx, "a")
	assert.False(t, c.Has(ctx, "a"))

	c.Clear(ctx)
	assert.False(t, c.Has(ctx, "b"))
	assert.True(t, mr.Exists("other:c"))
}

func TestRedisBackendDownIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	mr.Close()

	c.Set(ctx, "k", []byte("v"))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, c.Has(ctx, "k"))
}

func TestTypedOverRedis(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t)

	typed := Typed[[]float64](c)
	typed.Set(ctx, "pts", []float64{1, 2})

	got, ok := typed.Get(ctx, "pts")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, got)
}
