package metrics

import (
	"sync"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "echo"

// Ensure Metrics implements core.Recorder at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus collectors for the API
type Metrics struct {
	// Authentication
	AuthAttemptsTotal     *prometheus.CounterVec
	AuthDuration          *prometheus.HistogramVec
	RegistrationsTotal    *prometheus.CounterVec
	OAuthCallbacksTotal   *prometheus.CounterVec
	TokensIssuedTotal     *prometheus.CounterVec
	TokenIssueDuration    *prometheus.HistogramVec
	TokenValidationsTotal *prometheus.CounterVec
	TokenValidateDuration prometheus.Histogram

	// Library
	PlaylistOperationsTotal *prometheus.CounterVec
	FavoriteOperationsTotal *prometheus.CounterVec

	// Catalog
	CatalogRequestsTotal   *prometheus.CounterVec
	CatalogRequestDuration *prometheus.HistogramVec
	EnrichmentsTotal       *prometheus.CounterVec

	// Gauges
	UsersTotal     prometheus.Gauge
	AdminsTotal    prometheus.Gauge
	PlaylistsTotal prometheus.Gauge

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the Prometheus recorder when enabled and a NoopMetrics otherwise.
// Collectors are registered with the default registry only once per process.
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewWithRegistry builds a recorder bound to reg. Used by tests that need
// an isolated registry to assert on collected values.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	latency := []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

	return &Metrics{
		AuthAttemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login attempts by method and result",
		}, []string{"method", "result"}),
		AuthDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "auth_duration_seconds",
			Help:      "Time spent verifying credentials",
			Buckets:   latency,
		}, []string{"method"}),
		RegistrationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Local account registrations by result",
		}, []string{"result"}),
		OAuthCallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_callbacks_total",
			Help:      "OAuth callbacks by provider and result",
		}, []string{"provider", "result"}),
		TokensIssuedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Session tokens issued by login method",
		}, []string{"method"}),
		TokenIssueDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_issue_duration_seconds",
			Help:      "Time spent signing session tokens",
			Buckets:   latency,
		}, []string{"method"}),
		TokenValidationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_validations_total",
			Help:      "Bearer token validations by result",
		}, []string{"result"}),
		TokenValidateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_validation_duration_seconds",
			Help:      "Time spent validating bearer tokens",
			Buckets:   latency,
		}),

		PlaylistOperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlist_operations_total",
			Help:      "Playlist operations by kind and result",
		}, []string{"operation", "result"}),
		FavoriteOperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_operations_total",
			Help:      "Favorite operations by kind and result",
		}, []string{"operation", "result"}),

		CatalogRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Upstream catalog requests by operation and result",
		}, []string{"operation", "result"}),
		CatalogRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_request_duration_seconds",
			Help:      "Upstream catalog latency",
			Buckets:   latency,
		}, []string{"operation"}),
		EnrichmentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_enrichments_total",
			Help:      "Favorite enrichment lookups by result",
		}, []string{"result"}),

		UsersTotal: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Registered users",
		}),
		AdminsTotal: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "admins",
			Help:      "Users with the admin role",
		}),
		PlaylistsTotal: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playlists",
			Help:      "Stored playlists",
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		}),

		DatabaseQueryErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_query_errors_total",
			Help:      "Failed database queries by operation",
		}, []string{"operation"}),
	}
}
