package bootstrap

import (
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/handlers"
	"github.com/NathanBartolo/echo/internal/services"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	system   *handlers.SystemHandler
	auth     *handlers.AuthHandler
	google   *handlers.GoogleHandler // nil when Google login is disabled
	admin    *handlers.AdminHandler
	playlist *handlers.PlaylistHandler
	favorite *handlers.FavoriteHandler
	catalog  *handlers.CatalogHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	db handlers.HealthChecker,
	userService *services.UserService,
	playlistService *services.PlaylistService,
	favoriteService *services.FavoriteService,
	catalog core.Catalog,
	google core.IdentityProvider,
	recorder core.Recorder,
) handlerSet {
	h := handlerSet{
		system:   handlers.NewSystemHandler(db),
		auth:     handlers.NewAuthHandler(userService),
		admin:    handlers.NewAdminHandler(userService),
		playlist: handlers.NewPlaylistHandler(playlistService),
		favorite: handlers.NewFavoriteHandler(favoriteService),
		catalog:  handlers.NewCatalogHandler(catalog),
	}
	if google != nil {
		h.google = handlers.NewGoogleHandler(google, userService, recorder, cfg.FrontendURL)
	}
	return h
}
