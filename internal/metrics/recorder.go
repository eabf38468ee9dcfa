package metrics

import "time"

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

func outcome(success bool) string {
	if success {
		return resultSuccess
	}
	return resultFailure
}

func (m *Metrics) RecordAuthAttempt(method string, success bool, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(method, outcome(success)).Inc()
	m.AuthDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) RecordRegistration(success bool) {
	m.RegistrationsTotal.WithLabelValues(outcome(success)).Inc()
}

func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	m.OAuthCallbacksTotal.WithLabelValues(provider, outcome(success)).Inc()
}

func (m *Metrics) RecordTokenIssued(method string, generationTime time.Duration) {
	m.TokensIssuedTotal.WithLabelValues(method).Inc()
	m.TokenIssueDuration.WithLabelValues(method).Observe(generationTime.Seconds())
}

// RecordTokenValidation counts a validation; result is "valid", "expired" or "invalid".
func (m *Metrics) RecordTokenValidation(result string, duration time.Duration) {
	m.TokenValidationsTotal.WithLabelValues(result).Inc()
	m.TokenValidateDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordPlaylistOperation(operation string, success bool) {
	m.PlaylistOperationsTotal.WithLabelValues(operation, outcome(success)).Inc()
}

func (m *Metrics) RecordFavoriteOperation(operation string, success bool) {
	m.FavoriteOperationsTotal.WithLabelValues(operation, outcome(success)).Inc()
}

func (m *Metrics) RecordCatalogRequest(operation string, success bool, duration time.Duration) {
	m.CatalogRequestsTotal.WithLabelValues(operation, outcome(success)).Inc()
	m.CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEnrichment counts favorite lookups; result is "enriched", "miss" or "error".
func (m *Metrics) RecordEnrichment(result string) {
	m.EnrichmentsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) SetUsersCount(total, admins int64) {
	m.UsersTotal.Set(float64(total))
	m.AdminsTotal.Set(float64(admins))
}

func (m *Metrics) SetPlaylistsCount(count int64) {
	m.PlaylistsTotal.Set(float64(count))
}

func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
