package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"customer-route-service/internal/platform/obs"

	redis "github.com/redis/go-redis/v9"
)

// Redis is a byte cache shared across service replicas. Entries expire
// server-side after TTL. Backend errors are logged and treated as misses.
type Redis struct {
	rdb    *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedis(rdb *redis.Client, prefix string, logger *slog.Logger) *Redis {
	return &Redis{rdb: rdb, prefix: prefix, logger: logger}
}

// NewRedisFromURL parses a redis:// URL and verifies the connection.
func NewRedisFromURL(ctx context.Context, url, prefix string, logger *slog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis cache: ping: %w", err)
	}

	return NewRedis(rdb, prefix, logger), nil
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "redis cache get failed", "key", key, "err", err)
		}
		obs.CacheLookups.WithLabelValues("redis", "miss").Inc()
		return nil, false
	}
	obs.CacheLookups.WithLabelValues("redis", "hit").Inc()
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, data []byte) {
	if err := r.rdb.Set(ctx, r.key(key), data, TTL).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache set failed", "key", key, "err", err)
	}
}

func (r *Redis) Has(ctx context.Context, key string) bool {
	n, err := r.rdb.Exists(ctx, r.key(key)).Result()
	if err != nil {
		r.logger.WarnContext(ctx, "redis cache exists failed", "key", key, "err", err)
		return false
	}
	return n > 0
}

func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache delete failed", "key", key, "err", err)
	}
}

// Clear removes every key under the prefix.
func (r *Redis) Clear(ctx context.Context) {
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()

	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			r.del(ctx, batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache scan failed", "prefix", r.prefix, "err", err)
	}
	if len(batch) > 0 {
		r.del(ctx, batch)
	}
}

func (r *Redis) del(ctx context.Context, keys []string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache clear failed", "err", err)
	}
}

func (r *Redis) Close() error { return r.rdb.Close() }
