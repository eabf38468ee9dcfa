package core

import (
	"context"
	"time"
)

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(method string, success bool, duration time.Duration)
	RecordRegistration(success bool)
	RecordOAuthCallback(provider string, success bool)

	// Token Operations
	RecordTokenIssued(method string, generationTime time.Duration)
	RecordTokenValidation(result string, duration time.Duration)

	// Library Operations
	RecordPlaylistOperation(operation string, success bool)
	RecordFavoriteOperation(operation string, success bool)

	// Catalog
	RecordCatalogRequest(operation string, success bool, duration time.Duration)
	RecordEnrichment(result string)

	// Gauge Setters (for periodic updates)
	SetUsersCount(total, admins int64)
	SetPlaylistsCount(count int64)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by the gauge cache wrapper.
type MetricsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	CountPlaylists(ctx context.Context) (int64, error)
}
