package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NathanBartolo/echo/internal/auth"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"
	"github.com/NathanBartolo/echo/internal/token"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Login methods, used as metric and event labels
const (
	MethodLocal  = "local"
	MethodGoogle = "google"
)

const userCacheKeyPrefix = "user:"

// TokenProvider issues and verifies session tokens
type TokenProvider interface {
	GenerateToken(ctx context.Context, userID, role string) (*token.Result, error)
	ValidateToken(ctx context.Context, tokenString string) (*token.ValidationResult, error)
}

// Session is returned by every successful login
type Session struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

// UserServiceConfig holds the settings UserService needs from config.Config
type UserServiceConfig struct {
	AdminEmail   string
	UserCacheTTL time.Duration
}

type UserService struct {
	store     core.Store
	hasher    *auth.PasswordHasher
	tokens    TokenProvider
	cache     core.Cache[models.User]
	metrics   core.Recorder
	events    core.EventPublisher
	adminMail string
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewUserService(
	s core.Store,
	hasher *auth.PasswordHasher,
	tokens TokenProvider,
	cache core.Cache[models.User],
	metrics core.Recorder,
	publisher core.EventPublisher,
	cfg UserServiceConfig,
) *UserService {
	return &UserService{
		store:     s,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		metrics:   metrics,
		events:    publisher,
		adminMail: normalizeEmail(cfg.AdminEmail),
		cacheTTL:  cfg.UserCacheTTL,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local account and signs the caller in
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		s.metrics.RecordRegistration(false)
		return nil, ErrMissingFields
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		s.metrics.RecordRegistration(false)
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Favorites:    []models.FavoriteSong{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		s.metrics.RecordRegistration(false)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.metrics.RecordRegistration(true)

	s.publish(ctx, core.EventUserRegistered, user.ID, events.UserEvent{
		UserID: user.ID,
		Email:  user.Email,
		Method: MethodLocal,
	})

	return s.IssueSession(ctx, user, MethodLocal)
}

// Login verifies email and password credentials
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	start := time.Now()
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.verifyPassword(ctx, email, password)
	s.metrics.RecordAuthAttempt(MethodLocal, err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user, MethodLocal)
}

func (s *UserService) verifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasPassword() {
		return nil, ErrSocialLoginOnly
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateWithGoogle resolves the account bound to a Google identity,
// creating one on first login. An email already held by another account is
// rejected with ErrEmailInUse; identities are never attached to existing
// accounts. The configured admin email is promoted only when Google reports
// it verified.
func (s *UserService) AuthenticateWithGoogle(ctx context.Context, info *core.OAuthUserInfo) (*models.User, error) {
	if info == nil || info.ProviderUserID == "" {
		return nil, ErrNotAuthorized
	}

	user, err := s.store.GetUserByGoogleID(ctx, info.ProviderUserID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrRecordNotFound):
		return s.createGoogleUser(ctx, info)
	default:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if s.grantsAdmin(info) && !user.IsAdmin() {
		user.Role = models.RoleAdmin
		if err := s.saveUser(ctx, user); err != nil {
			return nil, err
		}
		log.Ctx(ctx).Info().Str("user_id", user.ID).Msg("promoted configured admin")
	}
	return user, nil
}

func (s *UserService) createGoogleUser(ctx context.Context, info *core.OAuthUserInfo) (*models.User, error) {
	email := normalizeEmail(info.Email)
	if email == "" {
		email = info.ProviderUserID + "@google.com"
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = email
	}
	role := models.RoleUser
	if s.grantsAdmin(info) {
		role = models.RoleAdmin
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		GoogleID:  info.ProviderUserID,
		Avatar:    info.AvatarURL,
		Favorites: []models.FavoriteSong{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		// A concurrent first login may have created the account
		if existing, lookupErr := s.store.GetUserByGoogleID(ctx, info.ProviderUserID); lookupErr == nil {
			return existing, nil
		}
		log.Ctx(ctx).Warn().Str("email", email).Msg("google login for an email owned by another account")
		return nil, ErrEmailInUse
	}

	s.publish(ctx, core.EventUserRegistered, user.ID, events.UserEvent{
		UserID: user.ID,
		Email:  user.Email,
		Method: MethodGoogle,
	})
	return user, nil
}

// grantsAdmin reports whether a Google identity proves ownership of the admin email
func (s *UserService) grantsAdmin(info *core.OAuthUserInfo) bool {
	return info.EmailVerified && s.isAdminEmail(info.Email)
}

// hashPassword maps bcrypt's length limit onto a client error
func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", ErrPasswordTooLong
	case err != nil:
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (s *UserService) isAdminEmail(email string) bool {
	return s.adminMail != "" && normalizeEmail(email) == s.adminMail
}

// IssueSession signs a token for user
func (s *UserService) IssueSession(ctx context.Context, user *models.User, method string) (*Session, error) {
	start := time.Now()
	result, err := s.tokens.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTokenIssued(method, time.Since(start))

	return &Session{Token: result.TokenString, User: user.Profile()}, nil
}

// ResolveBearer validates a bearer token and loads the current user record.
// Every failure, including a token for a deleted user, is ErrNotAuthorized.
func (s *UserService) ResolveBearer(ctx context.Context, tokenString string) (*models.User, error) {
	start := time.Now()
	result, err := s.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		outcome := "invalid"
		if errors.Is(err, token.ErrExpiredToken) {
			outcome = "expired"
		}
		s.metrics.RecordTokenValidation(outcome, time.Since(start))
		return nil, ErrNotAuthorized
	}
	s.metrics.RecordTokenValidation("valid", time.Since(start))

	user, err := s.GetUserByID(ctx, result.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID returns the account through the user cache. Cached copies
// carry no favorites or password hash; callers needing those read the store.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.cache.GetWithFetch(
		ctx,
		userCacheKeyPrefix+id,
		s.cacheTTL,
		func(ctx context.Context, _ string) (models.User, error) {
			u, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			u.Favorites = nil
			u.PasswordHash = ""
			return *u, nil
		},
	)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// loadUser reads the full record from the store, bypassing the cache
func (s *UserService) loadUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// saveUser persists user and drops the cached copy
func (s *UserService) saveUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = s.now()
	err := s.store.UpdateUser(ctx, user)
	s.invalidate(ctx, user.ID)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrDuplicateKey):
		return ErrEmailInUse
	case errors.Is(err, store.ErrRecordNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("failed to update user: %w", err)
	}
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, userCacheKeyPrefix+id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", id).Msg("failed to invalidate user cache")
	}
}

func (s *UserService) publish(ctx context.Context, eventType, key string, data any) {
	if err := s.events.Publish(ctx, eventType, key, data); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
