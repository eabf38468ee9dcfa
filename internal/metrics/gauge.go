package metrics

import (
	"context"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/rs/zerolog/log"
)

// UpdateGauges refreshes the user and playlist gauges. Failures are logged
// and counted; the previous gauge values are left in place.
func UpdateGauges(ctx context.Context, w *CacheWrapper, rec core.Recorder, ttl time.Duration) {
	if total, admins, err := w.UsersCount(ctx, ttl); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to count users for metrics")
		rec.RecordDatabaseQueryError("count_users")
	} else {
		rec.SetUsersCount(total, admins)
	}

	if playlists, err := w.PlaylistsCount(ctx, ttl); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to count playlists for metrics")
		rec.RecordDatabaseQueryError("count_playlists")
	} else {
		rec.SetPlaylistsCount(playlists)
	}
}
