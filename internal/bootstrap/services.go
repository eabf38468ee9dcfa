package bootstrap

import (
	"github.com/NathanBartolo/echo/internal/auth"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"
	"github.com/NathanBartolo/echo/internal/token"
)

// initializeServices wires the business layer
func initializeServices(
	cfg *config.Config,
	db core.Store,
	userCache core.Cache[models.User],
	catalog core.Catalog,
	recorder core.Recorder,
	publisher core.EventPublisher,
) (*services.UserService, *services.PlaylistService, *services.FavoriteService) {
	userService := services.NewUserService(
		db,
		auth.NewPasswordHasher(cfg.BcryptCost),
		token.NewJWTProvider(cfg),
		userCache,
		recorder,
		publisher,
		services.UserServiceConfig{
			AdminEmail:   cfg.AdminEmail,
			UserCacheTTL: cfg.UserCacheTTL,
		},
	)
	playlistService := services.NewPlaylistService(db, recorder, publisher)
	favoriteService := services.NewFavoriteService(userService, catalog, recorder)

	return userService, playlistService, favoriteService
}
