package cache

import (
	"context"
	"sync"
	"time"

	"customer-route-service/internal/platform/obs"
)

// TTL is how long an entry stays readable after Set.
const TTL = 15 * time.Minute

type entry[T any] struct {
	data      T
	timestamp time.Time
}

type options struct {
	now       func() time.Time
	namespace string
}

type Option func(*options)

// WithClock replaces time.Now, letting tests move time forward.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithNamespace labels lookups in the cache metrics.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// Memory is an in-process TTL cache. Expired entries are evicted lazily on
// Get/Has; there is no background sweep and no capacity bound.
type Memory[T any] struct {
	mu        sync.Mutex
	entries   map[string]entry[T]
	now       func() time.Time
	namespace string
}

func NewMemory[T any](opts ...Option) *Memory[T] {
	o := options{now: time.Now, namespace: "memory"}
	for _, opt := range opts {
		opt(&o)
	}

	return &Memory[T]{
		entries:   make(map[string]entry[T]),
		now:       o.now,
		namespace: o.namespace,
	}
}

// lookup returns the live entry for key, deleting it first if it has expired.
// Callers hold m.mu.
func (m *Memory[T]) lookup(key string) (entry[T], bool) {
	e, ok := m.entries[key]
	if !ok {
		return e, false
	}
	if m.now().Sub(e.timestamp) >= TTL {
		delete(m.entries, key)
		return e, false
	}
	return e, true
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	m.mu.Lock()
	e, ok := m.lookup(key)
	m.mu.Unlock()

	if !ok {
		obs.CacheLookups.WithLabelValues(m.namespace, "miss").Inc()
		var zero T
		return zero, false
	}
	obs.CacheLookups.WithLabelValues(m.namespace, "hit").Inc()
	return e.data, true
}

func (m *Memory[T]) Set(_ context.Context, key string, data T) {
	m.mu.Lock()
	m.entries[key] = entry[T]{data: data, timestamp: m.now()}
	m.mu.Unlock()
}

func (m *Memory[T]) Has(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookup(key)
	return ok
}

func (m *Memory[T]) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Memory[T]) Clear(_ context.Context) {
	m.mu.Lock()
	m.entries = make(map[string]entry[T])
	m.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var (
	sharedOnce sync.Once
	shared     *Memory[[]byte]
)

// Shared returns the process-wide byte cache, constructing it on first use.
// It is never torn down.
func Shared() *Memory[[]byte] {
	sharedOnce.Do(func() {
		shared = NewMemory[[]byte](WithNamespace("shared"))
	})
	return shared
}
