// Package storetest holds the behaviour every core.Store backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for a single subtest.
type Factory func(t *testing.T) core.Store

// NewUser builds a user with a unique email.
func NewUser(role string) *models.User {
	return &models.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        uuid.New().String()[:8] + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	}
}

// Run exercises users and playlists against the store returned by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("CreateAndGetUser", func(t *testing.T) {
		s := newStore(t)
		user := NewUser(models.RoleUser)
		user.GoogleID = "g-123"
		require.NoError(t, s.CreateUser(ctx, user))

		byID, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)
		assert.Equal(t, "hash", byID.PasswordHash)

		byEmail, err := s.GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byGoogle, err := s.GetUserByGoogleID(ctx, "g-123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byGoogle.ID)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetUserByID(ctx, uuid.New().String())
		require.ErrorIs(t, err, store.ErrRecordNotFound)
		_, err = s.GetUserByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, store.ErrRecordNotFound)
		_, err = s.GetUserByGoogleID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrRecordNotFound)
		require.ErrorIs(t, s.DeleteUser(ctx, uuid.New().String()), store.ErrRecordNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		s := newStore(t)
		first := NewUser(models.RoleUser)
		require.NoError(t, s.CreateUser(ctx, first))

		second := NewUser(models.RoleUser)
		second.Email = first.Email
		require.ErrorIs(t, s.CreateUser(ctx, second), store.ErrDuplicateKey)

		other := NewUser(models.RoleUser)
		require.NoError(t, s.CreateUser(ctx, other))
		other.Email = first.Email
		require.ErrorIs(t, s.UpdateUser(ctx, other), store.ErrDuplicateKey)
	})

	t.Run("DuplicateGoogleID", func(t *testing.T) {
		s := newStore(t)
		first := NewUser(models.RoleUser)
		first.GoogleID = "g-dup"
		require.NoError(t, s.CreateUser(ctx, first))

		second := NewUser(models.RoleUser)
		second.GoogleID = "g-dup"
		require.ErrorIs(t, s.CreateUser(ctx, second), store.ErrDuplicateKey)

		// accounts without a Google id never collide
		require.NoError(t, s.CreateUser(ctx, NewUser(models.RoleUser)))
		require.NoError(t, s.CreateUser(ctx, NewUser(models.RoleUser)))

		other := NewUser(models.RoleUser)
		require.NoError(t, s.CreateUser(ctx, other))
		other.GoogleID = "g-dup"
		require.ErrorIs(t, s.UpdateUser(ctx, other), store.ErrDuplicateKey)
	})

	t.Run("UpdateUserWithFavorites", func(t *testing.T) {
		s := newStore(t)
		user := NewUser(models.RoleUser)
		require.NoError(t, s.CreateUser(ctx, user))

		user.Name = "Renamed"
		user.Favorites = append(user.Favorites,
			models.FavoriteSong{ID: "1", Title: "Song", Artist: "Artist"},
			models.FavoriteSong{ID: "2", Title: "Other", Artist: "Artist", PreviewURL: "p"},
		)
		require.NoError(t, s.UpdateUser(ctx, user))

		got, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		require.Len(t, got.Favorites, 2)
		assert.Equal(t, models.TrackID("2"), got.Favorites[1].ID)
		assert.Equal(t, "p", got.Favorites[1].PreviewURL)

		user.PasswordHash = ""
		user.Favorites = nil
		require.NoError(t, s.UpdateUser(ctx, user))
		got, err = s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PasswordHash)
		assert.Empty(t, got.Favorites)
	})

	t.Run("UpdateMissingUser", func(t *testing.T) {
		s := newStore(t)
		require.ErrorIs(t, s.UpdateUser(ctx, NewUser(models.RoleUser)), store.ErrRecordNotFound)
	})

	t.Run("ListAndCountUsers", func(t *testing.T) {
		s := newStore(t)
		base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
		var ids []string
		for i, role := range []string{models.RoleUser, models.RoleAdmin, models.RoleUser} {
			u := NewUser(role)
			u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, s.CreateUser(ctx, u))
			ids = append(ids, u.ID)
		}

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, ids[2], users[0].ID, "newest user first")
		assert.Equal(t, ids[0], users[2].ID)

		total, err := s.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		admins, err := s.CountUsersByRole(ctx, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), admins)

		require.NoError(t, s.DeleteUser(ctx, ids[1]))
		total, err = s.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("PlaylistLifecycle", func(t *testing.T) {
		s := newStore(t)
		p := &models.Playlist{
			ID:     uuid.New().String(),
			UserID: uuid.New().String(),
			Name:   "Road Trip",
		}
		require.NoError(t, s.CreatePlaylist(ctx, p))

		got, err := s.GetPlaylist(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Road Trip", got.Name)
		assert.NotNil(t, got.Songs)
		assert.Empty(t, got.Songs)

		got.Songs = append(got.Songs,
			models.PlaylistSong{ID: "a", TrackID: "100", Title: "First"},
			models.PlaylistSong{ID: "b", TrackID: "100", Title: "First again"},
		)
		got.Description = ""
		require.NoError(t, s.UpdatePlaylist(ctx, got))

		again, err := s.GetPlaylist(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, again.Songs, 2)
		assert.Equal(t, "a", again.Songs[0].ID)
		assert.Equal(t, "b", again.Songs[1].ID)

		count, err := s.CountPlaylists(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		require.NoError(t, s.DeletePlaylist(ctx, p.ID))
		_, err = s.GetPlaylist(ctx, p.ID)
		require.ErrorIs(t, err, store.ErrRecordNotFound)
		require.ErrorIs(t, s.DeletePlaylist(ctx, p.ID), store.ErrRecordNotFound)
		require.ErrorIs(t, s.UpdatePlaylist(ctx, p), store.ErrRecordNotFound)
	})

	t.Run("ListPlaylistsByUser", func(t *testing.T) {
		s := newStore(t)
		owner := uuid.New().String()
		base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
		for i, name := range []string{"old", "mid", "new"} {
			require.NoError(t, s.CreatePlaylist(ctx, &models.Playlist{
				ID:        uuid.New().String(),
				UserID:    owner,
				Name:      name,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}
		require.NoError(t, s.CreatePlaylist(ctx, &models.Playlist{
			ID:     uuid.New().String(),
			UserID: uuid.New().String(),
			Name:   "someone else",
		}))

		playlists, err := s.ListPlaylistsByUser(ctx, owner)
		require.NoError(t, err)
		require.Len(t, playlists, 3)
		assert.Equal(t, "new", playlists[0].Name)
		assert.Equal(t, "old", playlists[2].Name)
		for _, p := range playlists {
			assert.NotNil(t, p.Songs)
		}

		none, err := s.ListPlaylistsByUser(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Health", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Health(ctx))
	})
}
