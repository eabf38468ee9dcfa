package metrics

import (
	"context"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"
)

// Cache keys for gauge counts
const (
	keyUsersTotal     = "users:total"
	keyUsersAdmins    = "users:admins"
	keyPlaylistsTotal = "playlists:total"
)

// CacheWrapper serves gauge counts through a cache so several API instances
// sharing Redis do not each run the count queries every interval.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{store: store, cache: cache}
}

func (w *CacheWrapper) count(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetch func(context.Context) (int64, error),
) (int64, error) {
	return w.cache.GetWithFetch(ctx, key, ttl, func(ctx context.Context, _ string) (int64, error) {
		return fetch(ctx)
	})
}

// UsersCount returns the number of users and how many of them are admins.
func (w *CacheWrapper) UsersCount(ctx context.Context, ttl time.Duration) (total, admins int64, err error) {
	total, err = w.count(ctx, keyUsersTotal, ttl, w.store.CountUsers)
	if err != nil {
		return 0, 0, err
	}
	admins, err = w.count(ctx, keyUsersAdmins, ttl, func(ctx context.Context) (int64, error) {
		return w.store.CountUsersByRole(ctx, models.RoleAdmin)
	})
	if err != nil {
		return 0, 0, err
	}
	return total, admins, nil
}

// PlaylistsCount returns the number of stored playlists.
func (w *CacheWrapper) PlaylistsCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return w.count(ctx, keyPlaylistsTotal, ttl, w.store.CountPlaylists)
}
