package cache

import (
	"context"
	"sync"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) live(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// Compile-time interface check.
var _ core.Cache[struct{}] = (*MemoryCache[struct{}])(nil)

// MemoryCache is a process-local cache with lazy expiration.
// Concurrent GetWithFetch calls for the same key share a single fetch.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	group   singleflight.Group
	now     func() time.Time
}

// NewMemoryCache creates a new memory cache instance.
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

func (m *MemoryCache[T]) Get(ctx context.Context, key string) (T, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !e.live(m.now()) {
		var zero T
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (m *MemoryCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry[T]{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	now := m.now()
	result := make(map[string]T, len(keys))

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, key := range keys {
		if e, ok := m.entries[key]; ok && e.live(now) {
			result[key] = e.value
		}
	}
	return result, nil
}

func (m *MemoryCache[T]) MSet(ctx context.Context, values map[string]T, ttl time.Duration) error {
	expiresAt := m.now().Add(ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range values {
		m.entries[key] = entry[T]{value: value, expiresAt: expiresAt}
	}
	return nil
}

func (m *MemoryCache[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close drops every entry.
func (m *MemoryCache[T]) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]entry[T])
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[T]) Health(ctx context.Context) error {
	return nil
}

// GetWithFetch returns the cached value or loads it with fetchFunc.
// Fetch errors are returned as-is and nothing is cached.
func (m *MemoryCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := m.Get(ctx, key); err == nil {
		return value, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		value, err := fetchFunc(ctx, key)
		if err != nil {
			return nil, err
		}
		_ = m.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
