package bootstrap

import (
	"errors"
	"fmt"

	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/util"

	"github.com/rs/zerolog/log"
)

const (
	defaultJWTSecret     = "your-256-bit-secret-change-in-production"
	defaultSessionSecret = "session-secret-change-in-production"
)

// validateConfiguration validates all configuration settings
func validateConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateSecrets(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID is set without GOOGLE_CLIENT_SECRET, Google login disabled")
	}
	if cfg.GoogleOAuthEnabled() && !util.IsRedirectSafe(cfg.GoogleCallbackURL, cfg.BaseURL) {
		log.Warn().
			Str("callback", cfg.GoogleCallbackURL).
			Str("base_url", cfg.BaseURL).
			Msg("GOOGLE_CALLBACK_URL does not point at this server")
	}
	return nil
}

// validateSecrets refuses the shipped placeholder secrets in production
func validateSecrets(cfg *config.Config) error {
	if !cfg.IsProduction {
		if cfg.JWTSecret == defaultJWTSecret {
			log.Warn().Msg("using the default JWT_SECRET, set one before deploying")
		}
		return nil
	}
	if cfg.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if cfg.GoogleOAuthEnabled() && cfg.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed in production")
	}
	return nil
}
