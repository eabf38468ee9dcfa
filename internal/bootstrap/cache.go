package bootstrap

import (
	"context"
	"fmt"

	"github.com/NathanBartolo/echo/internal/cache"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/rs/zerolog/log"
)

const (
	userCachePrefix    = "echo:users:"
	metricsCachePrefix = "echo:metrics:"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Info().Msg("Prometheus metrics initialized")
	} else {
		log.Info().Msg("metrics disabled (using noop implementation)")
	}
	return recorder
}

// newCache builds a cache of the given backend type
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	cacheType, prefix string,
) (core.Cache[T], error) {
	opts := cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	switch cacheType {
	case config.UserCacheTypeRedisAside:
		return cache.NewRueidisAsideCache[T](
			ctx,
			opts,
			prefix,
			cfg.UserCacheClientTTL,
			cfg.UserCacheSizePerConn,
		)
	case config.UserCacheTypeRedis:
		return cache.NewRueidisCache[T](ctx, opts, prefix)
	default:
		return cache.NewMemoryCache[T](), nil
	}
}

// initializeMetricsCache builds the count cache used by the gauge job.
// It shares the user cache backend so counts are computed once per
// interval across instances.
func initializeMetricsCache(ctx context.Context, cfg *config.Config) (core.Cache[int64], error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	c, err := newCache[int64](ctx, cfg, cfg.UserCacheType, metricsCachePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s metrics cache: %w", cfg.UserCacheType, err)
	}
	log.Info().Str("type", cfg.UserCacheType).Msg("metrics cache ready")
	return c, nil
}

// initializeUserCache builds the cache behind bearer token resolution
func initializeUserCache(ctx context.Context, cfg *config.Config) (core.Cache[models.User], error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	c, err := newCache[models.User](ctx, cfg, cfg.UserCacheType, userCachePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s user cache: %w", cfg.UserCacheType, err)
	}

	event := log.Info().Str("type", cfg.UserCacheType).Dur("ttl", cfg.UserCacheTTL)
	if cfg.UserCacheType != config.UserCacheTypeMemory {
		event = event.Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB)
	}
	event.Msg("user cache ready")
	return c, nil
}

// initializeFeaturedCache keeps the curated list in process memory
func initializeFeaturedCache() core.Cache[[]models.CatalogSong] {
	return cache.NewMemoryCache[[]models.CatalogSong]()
}
