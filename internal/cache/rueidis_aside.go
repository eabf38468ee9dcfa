package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisaside"
)

// Compile-time interface check.
var _ core.Cache[struct{}] = (*RueidisAsideCache[struct{}])(nil)

// RueidisAsideCache layers RESP3 client-side caching over Redis.
// Redis pushes invalidations to every connected instance, and concurrent
// misses for one key are collapsed into a single fetch across the fleet.
type RueidisAsideCache[T any] struct {
	client    rueidisaside.CacheAsideClient
	keyPrefix string
	clientTTL time.Duration
}

// NewRueidisAsideCache connects to Redis with client-side caching enabled.
// clientTTL bounds how long a value may be served from local memory and
// cacheSizeMB is the local cache budget per connection.
func NewRueidisAsideCache[T any](
	ctx context.Context,
	opts RedisOptions,
	keyPrefix string,
	clientTTL time.Duration,
	cacheSizeMB int,
) (*RueidisAsideCache[T], error) {
	option := opts.clientOption()
	if cacheSizeMB > 0 {
		option.CacheSizeEachConn = cacheSizeMB * 1024 * 1024
	}

	client, err := rueidisaside.NewClient(rueidisaside.ClientOption{ClientOption: option})
	if err != nil {
		return nil, fmt.Errorf("failed to create rueidisaside client: %w", err)
	}

	c := &RueidisAsideCache[T]{client: client, keyPrefix: keyPrefix, clientTTL: clientTTL}
	if err := c.Health(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return c, nil
}

// Get reads through the local cache. A miss never populates Redis.
func (r *RueidisAsideCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	raw, err := r.client.Get(
		ctx,
		r.clientTTL,
		r.keyPrefix+key,
		func(ctx context.Context, key string) (string, error) {
			return "", ErrCacheMiss
		},
	)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return zero, ErrCacheMiss
		}
		return zero, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	if raw == "" {
		return zero, ErrCacheMiss
	}
	return decode[T](raw)
}

// GetWithFetch delegates miss handling to rueidisaside, which locks the key
// in Redis so only one caller across all instances runs fetchFunc.
func (r *RueidisAsideCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	var zero T

	raw, err := r.client.Get(
		ctx,
		ttl,
		r.keyPrefix+key,
		func(ctx context.Context, _ string) (string, error) {
			value, err := fetchFunc(ctx, key)
			if err != nil {
				return "", err
			}
			return encode(value)
		},
	)
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

func (r *RueidisAsideCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}

	rc := r.client.Client()
	if err := rc.Do(ctx, rc.B().Set().Key(r.keyPrefix+key).Value(raw).Ex(ttl).Build()).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (r *RueidisAsideCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	result := make(map[string]T, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	rc := r.client.Client()
	cmds := make([]rueidis.CacheableTTL, len(keys))
	for i, key := range keys {
		cmds[i] = rueidis.CT(rc.B().Get().Key(r.keyPrefix+key).Cache(), r.clientTTL)
	}

	for i, resp := range rc.DoMultiCache(ctx, cmds...) {
		raw, err := resp.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
		if value, err := decode[T](raw); err == nil {
			result[keys[i]] = value
		}
	}
	return result, nil
}

func (r *RueidisAsideCache[T]) MSet(ctx context.Context, values map[string]T, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	rc := r.client.Client()
	cmds := make(rueidis.Commands, 0, len(values))
	for key, value := range values {
		raw, err := encode(value)
		if err != nil {
			return err
		}
		cmds = append(cmds, rc.B().Set().Key(r.keyPrefix+key).Value(raw).Ex(ttl).Build())
	}

	for _, resp := range rc.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
	}
	return nil
}

// Delete removes the key; Redis invalidates local copies on every instance.
func (r *RueidisAsideCache[T]) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.keyPrefix+key); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (r *RueidisAsideCache[T]) Close() error {
	r.client.Close()
	return nil
}

func (r *RueidisAsideCache[T]) Health(ctx context.Context) error {
	rc := r.client.Client()
	if err := rc.Do(ctx, rc.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}
