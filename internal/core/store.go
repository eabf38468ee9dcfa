package core

import (
	"context"

	"github.com/NathanBartolo/echo/internal/models"
)

// UserStore persists User aggregates, favorites included. Implementations
// return store.ErrRecordNotFound and store.ErrDuplicateKey sentinels.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	// UpdateUser replaces the stored document with user.
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
}

// PlaylistStore persists Playlist aggregates, songs included.
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	// ListPlaylistsByUser returns the user's playlists, newest first.
	ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error)
	// UpdatePlaylist replaces the stored document with playlist.
	UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	CountPlaylists(ctx context.Context) (int64, error)
}

// Store is the full persistence surface implemented by every backend.
type Store interface {
	UserStore
	PlaylistStore
	Health(ctx context.Context) error
	Close() error
}
