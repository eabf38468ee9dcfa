package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"
)

// ProfileUpdate carries optional profile changes; empty fields are left untouched
type ProfileUpdate struct {
	Name  string
	Email string
}

// UpdateProfile changes the caller's name and/or email
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" && email != user.Email {
		other, err := s.store.GetUserByEmail(ctx, email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, ErrEmailInUse
		case err != nil && !errors.Is(err, store.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = email
	}

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

// ChangePassword replaces the password of a local account
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return ErrPasswordsRequired
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return ErrSocialPasswordChange
	}
	if err := s.hasher.Verify(user.PasswordHash, current); err != nil {
		return ErrWrongCurrentPassword
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.saveUser(ctx, user)
}

// UpdateAvatar stores an avatar URL or data URI
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatar string) (*models.Profile, error) {
	if strings.TrimSpace(avatar) == "" {
		return nil, ErrAvatarRequired
	}
	return s.setAvatar(ctx, userID, avatar)
}

// RemoveAvatar clears the caller's avatar
func (s *UserService) RemoveAvatar(ctx context.Context, userID string) (*models.Profile, error) {
	return s.setAvatar(ctx, userID, "")
}

func (s *UserService) setAvatar(ctx context.Context, userID, avatar string) (*models.Profile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatar
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

// DeleteAccount removes the caller's account. Local accounts must confirm
// with their password; Google-only accounts need none.
// Playlists owned by the account are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.HasPassword() {
		if password == "" {
			return ErrPasswordRequiredDelete
		}
		if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
			return ErrIncorrectPassword
		}
	}

	return s.removeUser(ctx, user.ID)
}

func (s *UserService) removeUser(ctx context.Context, id string) error {
	err := s.store.DeleteUser(ctx, id)
	s.invalidate(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publish(ctx, core.EventUserDeleted, id, events.UserEvent{UserID: id})
	return nil
}
