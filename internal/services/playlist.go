package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PlaylistInput is the body of a create request
type PlaylistInput struct {
	Name        string
	Description string
	CoverImage  string
}

// PlaylistUpdate carries optional changes; nil fields are left untouched
type PlaylistUpdate struct {
	Name        *string
	Description *string
	CoverImage  *string
}

// PlaylistService manages playlists and their songs. Every operation on an
// existing playlist requires the caller to own it or be an admin.
type PlaylistService struct {
	store   core.PlaylistStore
	metrics core.Recorder
	events  core.EventPublisher
	now     func() time.Time
}

func NewPlaylistService(
	s core.PlaylistStore,
	metrics core.Recorder,
	publisher core.EventPublisher,
) *PlaylistService {
	return &PlaylistService{
		store:   s,
		metrics: metrics,
		events:  publisher,
		now:     time.Now,
	}
}

func canAccess(caller *models.User, ownerID string) bool {
	return caller != nil && (caller.IsAdmin() || caller.ID == ownerID)
}

// Create makes an empty playlist owned by caller
func (s *PlaylistService) Create(ctx context.Context, caller *models.User, in PlaylistInput) (*models.Playlist, error) {
	if caller == nil {
		return nil, ErrNotAuthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrPlaylistNameRequired
	}

	now := s.now()
	p := &models.Playlist{
		ID:          uuid.New().String(),
		UserID:      caller.ID,
		Name:        name,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		Songs:       []models.PlaylistSong{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.CreatePlaylist(ctx, p)
	s.metrics.RecordPlaylistOperation("create", err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	if err := s.events.Publish(ctx, core.EventPlaylistCreated, p.ID, events.PlaylistEvent{
		PlaylistID: p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
	}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to publish playlist.created")
	}
	return p, nil
}

// ListForUser returns userID's playlists, newest first
func (s *PlaylistService) ListForUser(ctx context.Context, caller *models.User, userID string) ([]models.Playlist, error) {
	if !canAccess(caller, userID) {
		return nil, ErrForbidden
	}

	playlists, err := s.store.ListPlaylistsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

// Get returns a single playlist
func (s *PlaylistService) Get(ctx context.Context, caller *models.User, id string) (*models.Playlist, error) {
	return s.load(ctx, caller, id)
}

// Update applies the non-nil fields of in. A blank name is rejected.
func (s *PlaylistService) Update(
	ctx context.Context,
	caller *models.User,
	id string,
	in PlaylistUpdate,
) (*models.Playlist, error) {
	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrPlaylistNameRequired
		}
	}

	return s.mutate(ctx, caller, id, "update", func(p *models.Playlist) error {
		if in.Name != nil {
			p.Name = name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.CoverImage != nil {
			p.CoverImage = *in.CoverImage
		}
		return nil
	})
}

// Delete removes a playlist
func (s *PlaylistService) Delete(ctx context.Context, caller *models.User, id string) error {
	p, err := s.load(ctx, caller, id)
	if err != nil {
		return err
	}

	err = s.store.DeletePlaylist(ctx, p.ID)
	s.metrics.RecordPlaylistOperation("delete", err == nil)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if err := s.events.Publish(ctx, core.EventPlaylistDeleted, p.ID, events.PlaylistEvent{
		PlaylistID: p.ID,
		UserID:     p.UserID,
	}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to publish playlist.deleted")
	}
	return nil
}

// AddSong appends a song entry with a freshly generated id. The same
// catalog track may be added any number of times.
func (s *PlaylistService) AddSong(
	ctx context.Context,
	caller *models.User,
	id string,
	song models.PlaylistSong,
) (*models.Playlist, error) {
	if strings.TrimSpace(song.Title) == "" {
		return nil, ErrSongDataRequired
	}
	song.ID = uuid.New().String()

	return s.mutate(ctx, caller, id, "add_song", func(p *models.Playlist) error {
		p.Songs = append(p.Songs, song)
		return nil
	})
}

// RemoveSong drops the entry with songID. Unknown ids are not an error.
func (s *PlaylistService) RemoveSong(ctx context.Context, caller *models.User, id, songID string) (*models.Playlist, error) {
	return s.mutate(ctx, caller, id, "remove_song", func(p *models.Playlist) error {
		kept := make([]models.PlaylistSong, 0, len(p.Songs))
		for _, song := range p.Songs {
			if song.ID != songID {
				kept = append(kept, song)
			}
		}
		p.Songs = kept
		return nil
	})
}

// ReorderSongs rearranges songs to match songIDs, which must name every
// existing entry exactly once.
func (s *PlaylistService) ReorderSongs(
	ctx context.Context,
	caller *models.User,
	id string,
	songIDs []string,
) (*models.Playlist, error) {
	return s.mutate(ctx, caller, id, "reorder", func(p *models.Playlist) error {
		if len(songIDs) != len(p.Songs) {
			return ErrInvalidSongOrder
		}

		byID := make(map[string]models.PlaylistSong, len(p.Songs))
		for _, song := range p.Songs {
			byID[song.ID] = song
		}

		ordered := make([]models.PlaylistSong, 0, len(songIDs))
		for _, songID := range songIDs {
			song, ok := byID[songID]
			if !ok {
				return ErrInvalidSongOrder
			}
			delete(byID, songID)
			ordered = append(ordered, song)
		}
		p.Songs = ordered
		return nil
	})
}

// load fetches a playlist and checks the caller may access it
func (s *PlaylistService) load(ctx context.Context, caller *models.User, id string) (*models.Playlist, error) {
	if caller == nil {
		return nil, ErrNotAuthorized
	}

	p, err := s.store.GetPlaylist(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	if !canAccess(caller, p.UserID) {
		return nil, ErrForbidden
	}
	p.Normalize()
	return p, nil
}

// mutate loads, applies change and writes the whole playlist back.
// Nothing is written when change fails.
func (s *PlaylistService) mutate(
	ctx context.Context,
	caller *models.User,
	id, op string,
	change func(*models.Playlist) error,
) (*models.Playlist, error) {
	p, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := change(p); err != nil {
		s.metrics.RecordPlaylistOperation(op, false)
		return nil, err
	}

	p.UpdatedAt = s.now()
	err = s.store.UpdatePlaylist(ctx, p)
	s.metrics.RecordPlaylistOperation(op, err == nil)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	p.Normalize()
	return p, nil
}
