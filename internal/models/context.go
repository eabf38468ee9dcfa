package models

import (
	"context"
)

type userContextKey struct{}

// ContextUserKey is the gin context key holding the authenticated *User.
const ContextUserKey = "user"

// SetUserContext returns a copy of ctx carrying the authenticated user.
func SetUserContext(ctx context.Context, user *User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext returns the authenticated user stored in ctx, or nil.
func GetUserFromContext(ctx context.Context) *User {
	if ctx == nil {
		return nil
	}
	// gin.Context keeps values in its own map
	if v := ctx.Value(ContextUserKey); v != nil {
		if user, ok := v.(*User); ok {
			return user
		}
	}
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// GetUserIDFromContext returns the authenticated user's id, or "".
func GetUserIDFromContext(ctx context.Context) string {
	if user := GetUserFromContext(ctx); user != nil {
		return user.ID
	}
	return ""
}
