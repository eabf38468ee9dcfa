package bootstrap

import (
	"net/http"
	"time"

	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/handlers"
	"github.com/NathanBartolo/echo/internal/logging"
	"github.com/NathanBartolo/echo/internal/metrics"
	"github.com/NathanBartolo/echo/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// sessionName is the cookie carrying the OAuth state between login and callback
const sessionName = "echo_session"

// oauthStateMaxAge bounds how long a Google login may take
const oauthStateMaxAge = 10 * time.Minute

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	h handlerSet,
	users middleware.BearerResolver,
	recorder core.Recorder,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(logging.RequestLogger(), gin.Recovery())
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	setupSessionMiddleware(r, cfg)
	setupMetricsEndpoint(r, cfg)
	setupAllRoutes(r, h, users)

	log.Info().
		Str("addr", cfg.ServerAddr).
		Str("frontend", cfg.FrontendURL).
		Str("database", cfg.DatabaseDriver).
		Bool("google_login", h.google != nil).
		Msg("Echo API configured")

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = []string{cfg.FrontendURL}
	c.AllowCredentials = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	return c
}

// setupSessionMiddleware configures the cookie store used for OAuth state
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/api/auth/google",
		MaxAge:   int(oauthStateMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Info().Msg("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Info().Msg("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET("/metrics", middleware.MetricsAuth(cfg.MetricsToken), gin.WrapH(promhttp.Handler()))
	default:
		log.Warn().Msg("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(r *gin.Engine, h handlerSet, users middleware.BearerResolver) {
	requireAuth := middleware.RequireAuth(users)

	r.GET("/", h.system.Root)
	r.GET("/health", h.system.Health)

	api := r.Group("/api")

	// Public reads: anonymous is fine, a bad token is not
	public := api.Group("", middleware.OptionalAuth(users))
	{
		public.GET("/test", h.system.Ping)
		public.GET("/search", h.catalog.Search)
		public.GET("/song/:id", h.catalog.Song)
		public.GET("/featured", h.catalog.Featured)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.auth.Register)
		authGroup.POST("/login", h.auth.Login)

		authGroup.GET("/me", requireAuth, h.auth.Me)
		authGroup.PUT("/profile", requireAuth, h.auth.UpdateProfile)
		authGroup.DELETE("/profile", requireAuth, h.auth.DeleteAccount)
		authGroup.PUT("/profile/password", requireAuth, h.auth.ChangePassword)
		authGroup.PUT("/profile/avatar", requireAuth, h.auth.UpdateAvatar)
		authGroup.DELETE("/profile/avatar", requireAuth, h.auth.RemoveAvatar)
	}
	setupGoogleRoutes(authGroup, h.google)

	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/users", h.admin.ListUsers)
		admin.GET("/users/:id", h.admin.GetUser)
		admin.PUT("/users/:id/role", h.admin.UpdateRole)
		admin.DELETE("/users/:id", h.admin.DeleteUser)
		admin.GET("/stats", h.admin.Stats)
	}

	favorites := api.Group("/favorites", requireAuth)
	{
		favorites.GET("", h.favorite.List)
		favorites.POST("", h.favorite.Add)
		favorites.DELETE("/:songId", h.favorite.Remove)
	}

	playlists := api.Group("/playlists", requireAuth)
	{
		playlists.POST("", h.playlist.Create)
		playlists.GET("/user/:userId", h.playlist.ListForUser)
		playlists.GET("/:id", h.playlist.Get)
		playlists.PUT("/:id", h.playlist.Update)
		playlists.DELETE("/:id", h.playlist.Delete)
		playlists.POST("/:id/song", h.playlist.AddSong)
		playlists.DELETE("/:id/song/:songId", h.playlist.RemoveSong)
		playlists.PUT("/:id/reorder", h.playlist.Reorder)
	}
}

// setupGoogleRoutes registers the OAuth redirect pair when a provider is configured
func setupGoogleRoutes(g *gin.RouterGroup, handler *handlers.GoogleHandler) {
	if handler == nil {
		return
	}
	g.GET("/google", handler.Login)
	g.GET("/google/callback", handler.Callback)
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	gin.SetMode(ginModeMap[cfg.IsProduction])
	log.Info().Str("mode", ginModeLogMessage[cfg.IsProduction]).Msg("gin mode")
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "release (production)",
	false: "debug (development)",
}
