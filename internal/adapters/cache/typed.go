package cache

import (
	"context"
	"encoding/json"

	"customer-route-service/internal/ports"
)

// JSON is a typed view over a byte cache. Values are stored as JSON so the
// same backing store (memory or Redis) can hold several value types.
type JSON[T any] struct {
	store ports.Cache[[]byte]
}

func Typed[T any](store ports.Cache[[]byte]) *JSON[T] {
	return &JSON[T]{store: store}
}

// Get treats an undecodable stored value as a miss and drops it.
func (c *JSON[T]) Get(ctx context.Context, key string) (T, bool) {
	var out T

	raw, ok := c.store.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		c.store.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return out, true
}

func (c *JSON[T]) Set(ctx context.Context, key string, data T) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	c.store.Set(ctx, key, raw)
}

func (c *JSON[T]) Has(ctx context.Context, key string) bool {
	return c.store.Has(ctx, key)
}

func (c *JSON[T]) Delete(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
}

func (c *JSON[T]) Clear(ctx context.Context) {
	c.store.Clear(ctx)
}
