package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/auth"
	"github.com/NathanBartolo/echo/internal/cache"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/middleware"
	"github.com/NathanBartolo/echo/internal/mocks"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"
	"github.com/NathanBartolo/echo/internal/store"
	"github.com/NathanBartolo/echo/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAdminEmail = "admin@echo.test"

type testEnv struct {
	router  *gin.Engine
	store   *store.Store
	users   *services.UserService
	catalog *mocks.MockCatalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := metrics.NewNoopMetrics()
	users := services.NewUserService(
		db,
		auth.NewPasswordHasher(config.MinBcryptCost),
		token.NewJWTProvider(&config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}),
		cache.NewMemoryCache[models.User](),
		rec,
		events.NoopPublisher{},
		services.UserServiceConfig{AdminEmail: testAdminEmail, UserCacheTTL: time.Minute},
	)
	catalog := mocks.NewMockCatalog(gomock.NewController(t))
	playlists := services.NewPlaylistService(db, rec, events.NoopPublisher{})
	favorites := services.NewFavoriteService(users, catalog, rec)

	authH := NewAuthHandler(users)
	adminH := NewAdminHandler(users)
	playlistH := NewPlaylistHandler(playlists)
	favoriteH := NewFavoriteHandler(favorites)
	catalogH := NewCatalogHandler(catalog)
	systemH := NewSystemHandler(db)

	r := gin.New()
	r.GET("/", systemH.Root)
	r.GET("/health", systemH.Health)

	api := r.Group("/api")
	api.GET("/test", systemH.Ping)
	api.GET("/search", catalogH.Search)
	api.GET("/song/:id", catalogH.Song)
	api.GET("/featured", catalogH.Featured)

	requireAuth := middleware.RequireAuth(users)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authH.Register)
	authGroup.POST("/login", authH.Login)
	authGroup.GET("/me", requireAuth, authH.Me)
	authGroup.PUT("/profile", requireAuth, authH.UpdateProfile)
	authGroup.DELETE("/profile", requireAuth, authH.DeleteAccount)
	authGroup.PUT("/profile/password", requireAuth, authH.ChangePassword)
	authGroup.PUT("/profile/avatar", requireAuth, authH.UpdateAvatar)
	authGroup.DELETE("/profile/avatar", requireAuth, authH.RemoveAvatar)

	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/:id", adminH.GetUser)
	admin.PUT("/users/:id/role", adminH.UpdateRole)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.GET("/stats", adminH.Stats)

	fav := api.Group("/favorites", requireAuth)
	fav.GET("", favoriteH.List)
	fav.POST("", favoriteH.Add)
	fav.DELETE("/:songId", favoriteH.Remove)

	pl := api.Group("/playlists", requireAuth)
	pl.POST("", playlistH.Create)
	pl.GET("/user/:userId", playlistH.ListForUser)
	pl.GET("/:id", playlistH.Get)
	pl.PUT("/:id", playlistH.Update)
	pl.DELETE("/:id", playlistH.Delete)
	pl.POST("/:id/song", playlistH.AddSong)
	pl.DELETE("/:id/song/:songId", playlistH.RemoveSong)
	pl.PUT("/:id/reorder", playlistH.Reorder)

	return &testEnv{router: r, store: db, users: users, catalog: catalog}
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a local account and returns its session
func (e *testEnv) register(t *testing.T, name, email string) services.Session {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[services.Session](t, w)
}

// registerAdmin creates an account and promotes it directly in the store
func (e *testEnv) registerAdmin(t *testing.T) services.Session {
	t.Helper()
	session := e.register(t, "Admin", testAdminEmail)
	_, err := e.users.UpdateUserRole(context.Background(), session.User.ID, models.RoleAdmin)
	require.NoError(t, err)
	return session
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
