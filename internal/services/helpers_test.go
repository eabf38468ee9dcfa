package services

import (
	"context"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/auth"
	"github.com/NathanBartolo/echo/internal/cache"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/store"
	"github.com/NathanBartolo/echo/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testAdminEmail = "admin@echo.test"

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type userServiceOption func(*userServiceDeps)

type userServiceDeps struct {
	cache     core.Cache[models.User]
	publisher core.EventPublisher
}

func withUserCache(c core.Cache[models.User]) userServiceOption {
	return func(d *userServiceDeps) { d.cache = c }
}

func withPublisher(p core.EventPublisher) userServiceOption {
	return func(d *userServiceDeps) { d.publisher = p }
}

func newTestUserService(t *testing.T, db core.Store, opts ...userServiceOption) *UserService {
	t.Helper()
	deps := &userServiceDeps{
		cache:     cache.NewMemoryCache[models.User](),
		publisher: events.NoopPublisher{},
	}
	for _, opt := range opts {
		opt(deps)
	}

	tokens := token.NewJWTProvider(&config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		BaseURL:       "http://localhost:5000",
	})
	return NewUserService(
		db,
		auth.NewPasswordHasher(config.MinBcryptCost),
		tokens,
		deps.cache,
		metrics.NewNoopMetrics(),
		deps.publisher,
		UserServiceConfig{AdminEmail: testAdminEmail, UserCacheTTL: 5 * time.Minute},
	)
}

func makeTestUser(t *testing.T, db core.Store, role string) *models.User {
	t.Helper()
	now := time.Now()
	u := &models.User{
		ID:        uuid.New().String(),
		Name:      "listener",
		Email:     uuid.New().String()[:8] + "@example.com",
		Role:      role,
		Favorites: []models.FavoriteSong{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real DB fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}

func assertKind(t *testing.T, want Kind, err error) {
	t.Helper()
	kind, ok := KindOf(err)
	require.True(t, ok, "expected a service error, got %v", err)
	require.Equal(t, want, kind)
}
