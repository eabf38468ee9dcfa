package services

import (
	"context"
	"fmt"

	"github.com/NathanBartolo/echo/internal/models"
)

// Stats summarises the user base for the admin dashboard
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	AdminCount    int64 `json:"adminCount"`
	UserCount     int64 `json:"userCount"`
	PlaylistCount int64 `json:"playlistCount"`
}

// ListUsers returns every account, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// GetUser returns the full account record, favorites included
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.loadUser(ctx, id)
}

// UpdateUserRole sets role to "user" or "admin"
func (s *UserService) UpdateUserRole(ctx context.Context, id, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes any account
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.removeUser(ctx, id)
}

// Stats counts users by role and all playlists
func (s *UserService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.store.CountUsers(ctx)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_users")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	admins, err := s.store.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_users")
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	regular, err := s.store.CountUsersByRole(ctx, models.RoleUser)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_users")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	playlists, err := s.store.CountPlaylists(ctx)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("count_playlists")
		return nil, fmt.Errorf("failed to count playlists: %w", err)
	}

	return &Stats{
		TotalUsers:    total,
		AdminCount:    admins,
		UserCount:     regular,
		PlaylistCount: playlists,
	}, nil
}
