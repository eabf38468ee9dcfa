package handlers

import (
	"errors"
	"net/http"

	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const msgServerError = "Server error"

var kindStatus = map[services.Kind]int{
	services.KindBadRequest:   http.StatusBadRequest,
	services.KindUnauthorized: http.StatusUnauthorized,
	services.KindForbidden:    http.StatusForbidden,
	services.KindNotFound:     http.StatusNotFound,
	services.KindConflict:     http.StatusConflict,
}

// respondError writes {"error": message} for service errors and a generic
// 500 for anything else. Internal details are only logged.
func respondError(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		if status, ok := kindStatus[se.Kind]; ok {
			c.JSON(status, gin.H{"error": se.Message})
			return
		}
	}
	respondServerError(c, err, msgServerError)
}

func respondServerError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	log.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
