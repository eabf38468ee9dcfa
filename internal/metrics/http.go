package metrics

import (
	"strconv"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/gin-gonic/gin"
)

// HTTPMetricsMiddleware records request counts and latency per route pattern.
// It is a pass-through unless m is the Prometheus-backed *Metrics.
func HTTPMetricsMiddleware(m core.Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := routePattern(c.FullPath())
		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// routePattern keeps label cardinality bounded: unmatched paths share one label.
func routePattern(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}
