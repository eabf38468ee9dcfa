package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/metrics"

	"github.com/appleboy/graceful"
	"github.com/rs/zerolog/log"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("Echo API listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("failed to start server")
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob drains in-flight requests within timeout
func addServerShutdownJob(m *graceful.Manager, srv *http.Server, timeout time.Duration) {
	m.AddShutdownJob(func() error {
		log.Info().Dur("timeout", timeout).Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
			return err
		}

		log.Info().Msg("server exited")
		return nil
	})
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db core.MetricsStore,
	recorder core.Recorder,
	metricsCache core.Cache[int64],
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || metricsCache == nil {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		wrapper := metrics.NewCacheWrapper(db, metricsCache)
		ctx = log.Logger.WithContext(ctx)

		// Update immediately on startup
		metrics.UpdateGauges(ctx, wrapper, recorder, cfg.MetricsGaugeUpdateInterval)

		for {
			select {
			case <-ticker.C:
				metrics.UpdateGauges(ctx, wrapper, recorder, cfg.MetricsGaugeUpdateInterval)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addResourceCleanupJob closes infrastructure once the server has stopped
func addResourceCleanupJob(m *graceful.Manager, app *Application) {
	m.AddShutdownJob(func() error {
		app.Close()
		return nil
	})
}

func closeResource(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Error().Err(err).Str("resource", name).Msg("error closing resource")
		return
	}
	log.Info().Str("resource", name).Msg("closed")
}
