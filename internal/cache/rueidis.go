package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/redis/rueidis"
)

// Compile-time interface check.
var _ core.Cache[struct{}] = (*RueidisCache[struct{}])(nil)

// RueidisCache stores JSON-encoded values in Redis without client-side caching.
// Suitable when several API instances must observe the same invalidations.
type RueidisCache[T any] struct {
	client    rueidis.Client
	keyPrefix string
}

// RedisOptions holds the connection settings shared by the Redis caches.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func (o RedisOptions) clientOption() rueidis.ClientOption {
	return rueidis.ClientOption{
		InitAddress: []string{o.Addr},
		Password:    o.Password,
		SelectDB:    o.DB,
	}
}

// NewRueidisCache connects to Redis and verifies the connection with PING.
func NewRueidisCache[T any](
	ctx context.Context,
	opts RedisOptions,
	keyPrefix string,
) (*RueidisCache[T], error) {
	option := opts.clientOption()
	option.DisableCache = true

	client, err := rueidis.NewClient(option)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RueidisCache[T]{client: client, keyPrefix: keyPrefix}, nil
}

func (r *RueidisCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	raw, err := r.client.Do(ctx, r.client.B().Get().Key(r.keyPrefix+key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return zero, ErrCacheMiss
		}
		return zero, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return decode[T](raw)
}

func (r *RueidisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}

	cmd := r.client.B().Set().Key(r.keyPrefix + key).Value(raw).Ex(ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// MGet skips keys that are missing or hold undecodable values.
func (r *RueidisCache[T]) MGet(ctx context.Context, keys []string) (map[string]T, error) {
	result := make(map[string]T, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	cmd := r.client.B().Mget().Key(prefixed(r.keyPrefix, keys)...).Build()
	values, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	for i, msg := range values {
		raw, err := msg.ToString()
		if err != nil {
			continue
		}
		if value, err := decode[T](raw); err == nil {
			result[keys[i]] = value
		}
	}
	return result, nil
}

func (r *RueidisCache[T]) MSet(ctx context.Context, values map[string]T, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	cmds := make(rueidis.Commands, 0, len(values))
	for key, value := range values {
		raw, err := encode(value)
		if err != nil {
			return err
		}
		cmds = append(cmds, r.client.B().Set().Key(r.keyPrefix+key).Value(raw).Ex(ttl).Build())
	}

	for _, resp := range r.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
	}
	return nil
}

func (r *RueidisCache[T]) Delete(ctx context.Context, key string) error {
	if err := r.client.Do(ctx, r.client.B().Del().Key(r.keyPrefix+key).Build()).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (r *RueidisCache[T]) Close() error {
	r.client.Close()
	return nil
}

func (r *RueidisCache[T]) Health(ctx context.Context) error {
	if err := r.client.Do(ctx, r.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// GetWithFetch loads through fetchFunc on a miss or backend error.
// A failed write-back is ignored; the fetched value is still returned.
func (r *RueidisCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := r.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := fetchFunc(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = r.Set(ctx, key, value, ttl)
	return value, nil
}
