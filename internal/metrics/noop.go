package metrics

import (
	"time"

	"github.com/NathanBartolo/echo/internal/core"
)

// NoopMetrics discards everything; used when METRICS_ENABLED is false
type NoopMetrics struct{}

var _ core.Recorder = (*NoopMetrics)(nil)

func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(string, bool, time.Duration)    {}
func (n *NoopMetrics) RecordRegistration(bool)                          {}
func (n *NoopMetrics) RecordOAuthCallback(string, bool)                 {}
func (n *NoopMetrics) RecordTokenIssued(string, time.Duration)          {}
func (n *NoopMetrics) RecordTokenValidation(string, time.Duration)      {}
func (n *NoopMetrics) RecordPlaylistOperation(string, bool)             {}
func (n *NoopMetrics) RecordFavoriteOperation(string, bool)             {}
func (n *NoopMetrics) RecordCatalogRequest(string, bool, time.Duration) {}
func (n *NoopMetrics) RecordEnrichment(string)                          {}
func (n *NoopMetrics) SetUsersCount(int64, int64)                       {}
func (n *NoopMetrics) SetPlaylistsCount(int64)                          {}
func (n *NoopMetrics) RecordDatabaseQueryError(string)                  {}
