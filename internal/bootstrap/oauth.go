package bootstrap

import (
	"fmt"

	"github.com/NathanBartolo/echo/internal/auth"
	"github.com/NathanBartolo/echo/internal/client"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"

	"github.com/rs/zerolog/log"
)

// initializeGoogleProvider returns nil when Google login is not configured
func initializeGoogleProvider(cfg *config.Config) (core.IdentityProvider, error) {
	if !cfg.GoogleOAuthEnabled() {
		log.Info().Msg("Google login disabled (GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing)")
		return nil, nil
	}

	httpClient, err := client.New(cfg.OAuthTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth HTTP client: %w", err)
	}

	provider := auth.NewGoogleProvider(auth.OAuthProviderConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
	}, httpClient)
	log.Info().Str("redirect", cfg.GoogleCallbackURL).Msg("Google login configured")
	return provider, nil
}
