package store

import (
	"context"

	"github.com/NathanBartolo/echo/internal/models"
)

// Playlist operations
func (s *Store) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.Normalize()
	return translate(s.db.WithContext(ctx).Create(playlist).Error)
}

func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, translate(err)
	}
	playlist.Normalize()
	return &playlist, nil
}

func (s *Store) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error; err != nil {
		return nil, err
	}
	for i := range playlists {
		playlists[i].Normalize()
	}
	return playlists, nil
}

// UpdatePlaylist writes every column of playlist, songs included.
func (s *Store) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.Normalize()
	result := s.db.WithContext(ctx).Select("*").Omit("created_at").Updates(playlist)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Playlist{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) CountPlaylists(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Playlist{}).Count(&count).Error
	return count, err
}
