package bootstrap

import (
	"fmt"

	"github.com/NathanBartolo/echo/internal/catalog"
	"github.com/NathanBartolo/echo/internal/client"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/events"
	"github.com/NathanBartolo/echo/internal/models"

	"github.com/rs/zerolog/log"
)

// initializeCatalog builds the iTunes client with a retrying HTTP transport
func initializeCatalog(
	cfg *config.Config,
	featured core.Cache[[]models.CatalogSong],
	recorder core.Recorder,
) (*catalog.Client, error) {
	httpClient, err := client.NewRetrying(cfg.CatalogTimeout, client.RetryConfig{
		MaxRetries:    cfg.CatalogMaxRetries,
		RetryDelay:    cfg.CatalogRetryDelay,
		MaxRetryDelay: cfg.CatalogMaxRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog HTTP client: %w", err)
	}

	log.Info().
		Str("base_url", cfg.CatalogBaseURL).
		Int("max_retries", cfg.CatalogMaxRetries).
		Int("featured_queries", len(cfg.FeaturedQueries)).
		Msg("catalog client configured")

	return catalog.NewClient(catalog.Config{
		BaseURL:         cfg.CatalogBaseURL,
		FeaturedQueries: cfg.FeaturedQueries,
		FeaturedTTL:     cfg.FeaturedCacheTTL,
	}, httpClient, featured, recorder), nil
}

// initializeEvents connects to Kafka when brokers are configured
func initializeEvents(cfg *config.Config) (core.EventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info().Msg("domain events disabled (KAFKA_BROKERS not set)")
		return events.NoopPublisher{}, nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kafka publisher: %w", err)
	}
	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("domain events enabled")
	return publisher, nil
}
