package store

import (
	"context"

	"github.com/NathanBartolo/echo/internal/models"
)

// User operations
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("google_id = ?", googleID).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateUser writes every column of user, favorites included.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	result := s.db.WithContext(ctx).Select("*").Omit("created_at").Updates(user)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *Store) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
