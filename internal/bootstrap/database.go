package bootstrap

import (
	"context"
	"fmt"

	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/store"
	"github.com/NathanBartolo/echo/internal/store/mongostore"

	"github.com/rs/zerolog/log"
)

// initializeDatabase opens the configured backend
func initializeDatabase(ctx context.Context, cfg *config.Config) (core.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DBInitTimeout)
	defer cancel()

	if cfg.DatabaseDriver == config.DatabaseDriverMongoDB {
		db, err := mongostore.New(ctx, cfg.DatabaseDSN, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Info().Str("driver", cfg.DatabaseDriver).Str("database", cfg.MongoDatabase).Msg("database connected")
		return db, nil
	}

	db, err := store.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("database connected")
	return db, nil
}
