package middleware

import (
	"strings"

	"github.com/NathanBartolo/echo/internal/models"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. ok is false when the header is present but malformed.
func bearerToken(c *gin.Context) (token string, present, ok bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false, false
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", true, false
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, true, token != ""
}

// CurrentUser returns the user attached by OptionalAuth or RequireAuth
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(models.ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(models.ContextUserKey, user)
	c.Request = c.Request.WithContext(models.SetUserContext(c.Request.Context(), user))
}
