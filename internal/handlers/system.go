package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// SystemHandler serves the liveness and connectivity probes
type SystemHandler struct {
	db HealthChecker
}

func NewSystemHandler(db HealthChecker) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root answers GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Echo API is running...")
}

// Ping answers GET /api/test, used by the client to check connectivity
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend is working!"})
}

// Health reports database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
