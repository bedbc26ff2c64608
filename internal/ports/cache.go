package ports

import "context"

// Cache is a time-expiring key/value store. Expired entries are never returned.
// Implementations degrade backend failures to misses.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, data T)
	Has(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}
