package bootstrap

import (
	"context"
	"net/http"

	"github.com/NathanBartolo/echo/internal/catalog"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB               core.Store
	MetricsRecorder  core.Recorder
	MetricsCache     core.Cache[int64]
	UserCache        core.Cache[models.User]
	FeaturedCache    core.Cache[[]models.CatalogSong]
	Events           core.EventPublisher
	Catalog          *catalog.Client
	IdentityProvider core.IdentityProvider

	// Services
	UserService     *services.UserService
	PlaylistService *services.PlaylistService
	FavoriteService *services.FavoriteService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server

	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

// New validates cfg and builds every layer without starting the server.
// Callers own the returned application and must call Close.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	if err := validateConfiguration(cfg); err != nil {
		return nil, err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		app.Close()
		return nil, err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	return app, nil
}

// Run builds the application and serves until a shutdown signal arrives
func Run(ctx context.Context, cfg *config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()
	return nil
}

// initializeInfrastructure sets up the database, caches, metrics and events
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}
	app.addCloser("database", app.DB.Close)

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config)
	app.MetricsCache, err = initializeMetricsCache(ctx, app.Config)
	if err != nil {
		return err
	}
	if app.MetricsCache != nil {
		app.addCloser("metrics cache", app.MetricsCache.Close)
	}

	// Caches
	app.UserCache, err = initializeUserCache(ctx, app.Config)
	if err != nil {
		return err
	}
	app.addCloser("user cache", app.UserCache.Close)
	app.FeaturedCache = initializeFeaturedCache()

	// Domain events
	app.Events, err = initializeEvents(app.Config)
	if err != nil {
		return err
	}
	app.addCloser("event publisher", app.Events.Close)

	// Outbound integrations
	app.Catalog, err = initializeCatalog(app.Config, app.FeaturedCache, app.MetricsRecorder)
	if err != nil {
		return err
	}
	app.IdentityProvider, err = initializeGoogleProvider(app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.UserService,
		app.PlaylistService,
		app.FavoriteService = initializeServices(
		app.Config,
		app.DB,
		app.UserCache,
		app.Catalog,
		app.MetricsRecorder,
		app.Events,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.DB,
		app.UserService,
		app.PlaylistService,
		app.FavoriteService,
		app.Catalog,
		app.IdentityProvider,
		app.MetricsRecorder,
	)

	app.Router = setupRouter(app.Config, app.HandlerSet, app.UserService, app.MetricsRecorder)
	app.Server = createHTTPServer(app.Config, app.Router)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server, app.Config.ServerShutdownTimeout)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.MetricsCache)
	addResourceCleanupJob(m, app)

	<-m.Done()
}

func (app *Application) addCloser(name string, fn func() error) {
	app.closers = append(app.closers, namedCloser{name: name, close: fn})
}

// Close releases infrastructure in reverse order of creation
func (app *Application) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		c := app.closers[i]
		closeResource(c.name, c.close)
	}
	app.closers = nil
}
