package middleware

import (
	"context"
	"net/http"

	"github.com/NathanBartolo/echo/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error bodies returned by the gate
const (
	msgNotAuthorized = "Not authorized"
	msgAdminOnly     = "Admin only"
)

// BearerResolver turns a bearer token into the current user record.
// services.UserService implements it.
type BearerResolver interface {
	ResolveBearer(ctx context.Context, token string) (*models.User, error)
}

// OptionalAuth attaches the caller when a bearer token is sent. Requests
// without an Authorization header pass through anonymously; a malformed or
// invalid token is rejected.
func OptionalAuth(users BearerResolver) gin.HandlerFunc {
	return authenticate(users, false)
}

// RequireAuth rejects anonymous requests with 401
func RequireAuth(users BearerResolver) gin.HandlerFunc {
	return authenticate(users, true)
}

func authenticate(users BearerResolver, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearerToken(c)
		if !present {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthorized})
				return
			}
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthorized})
			return
		}

		user, err := users.ResolveBearer(c.Request.Context(), token)
		if err != nil || user == nil {
			log.Ctx(c.Request.Context()).Debug().Err(err).Msg("bearer token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthorized})
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthorized})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgAdminOnly})
			return
		}
		c.Next()
	}
}
