package services

import (
	"context"
	"strings"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Enrichment outcomes, used as metric labels
const (
	enrichEnriched = "enriched"
	enrichMiss     = "miss"
	enrichError    = "error"
)

const enrichConcurrency = 4

// FavoriteService manages the favorites embedded in a user record.
// Favorites reject duplicate ids, unlike playlist songs.
type FavoriteService struct {
	users   *UserService
	catalog core.Catalog
	metrics core.Recorder
}

func NewFavoriteService(users *UserService, catalog core.Catalog, metrics core.Recorder) *FavoriteService {
	return &FavoriteService{users: users, catalog: catalog, metrics: metrics}
}

// List returns the caller's favorites. Entries without a preview URL are
// looked up in the catalog by title; lookup failures leave them unchanged
// and the result is never written back.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.FavoriteSong, error) {
	user, err := s.users.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorites := make([]models.FavoriteSong, len(user.Favorites))
	copy(favorites, user.Favorites)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range favorites {
		if favorites[i].PreviewURL != "" || favorites[i].Title == "" {
			continue
		}
		g.Go(func() error {
			favorites[i].PreviewURL = s.previewFor(gctx, favorites[i].Title)
			return nil
		})
	}
	_ = g.Wait()

	return favorites, nil
}

func (s *FavoriteService) previewFor(ctx context.Context, title string) string {
	songs, err := s.catalog.Search(ctx, title, 1)
	if err != nil {
		s.metrics.RecordEnrichment(enrichError)
		log.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("failed to fetch preview url")
		return ""
	}
	if len(songs) == 0 || songs[0].PreviewURL == "" {
		s.metrics.RecordEnrichment(enrichMiss)
		return ""
	}
	s.metrics.RecordEnrichment(enrichEnriched)
	return songs[0].PreviewURL
}

// Add saves song to the caller's favorites and returns the updated list
func (s *FavoriteService) Add(ctx context.Context, userID string, song models.FavoriteSong) ([]models.FavoriteSong, error) {
	song.Title = strings.TrimSpace(song.Title)
	song.Artist = strings.TrimSpace(song.Artist)
	if song.ID == "" || song.Title == "" || song.Artist == "" {
		s.metrics.RecordFavoriteOperation("add", false)
		return nil, ErrSongDataRequired
	}

	user, err := s.users.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.FindFavorite(song.ID) >= 0 {
		s.metrics.RecordFavoriteOperation("add", false)
		return nil, ErrFavoriteExists
	}

	user.Favorites = append(user.Favorites, song)
	err = s.users.saveUser(ctx, user)
	s.metrics.RecordFavoriteOperation("add", err == nil)
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

// Remove drops songID from the caller's favorites. Removing an id that is
// not present succeeds and leaves the list unchanged.
func (s *FavoriteService) Remove(ctx context.Context, userID string, songID models.TrackID) ([]models.FavoriteSong, error) {
	if songID == "" {
		return nil, ErrSongIDRequired
	}

	user, err := s.users.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := user.FindFavorite(songID)
	if idx < 0 {
		s.metrics.RecordFavoriteOperation("remove", true)
		return nonNil(user.Favorites), nil
	}

	user.Favorites = append(user.Favorites[:idx], user.Favorites[idx+1:]...)
	err = s.users.saveUser(ctx, user)
	s.metrics.RecordFavoriteOperation("remove", err == nil)
	if err != nil {
		return nil, err
	}
	return nonNil(user.Favorites), nil
}

func nonNil(favs []models.FavoriteSong) []models.FavoriteSong {
	if favs == nil {
		return []models.FavoriteSong{}
	}
	return favs
}

