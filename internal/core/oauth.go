package core

import "context"

// OAuthUserInfo is the identity returned by an external login provider.
type OAuthUserInfo struct {
	ProviderUserID string
	Email          string // May be empty
	EmailVerified  bool   // Provider vouches for Email
	Name           string
	AvatarURL      string
}

// IdentityProvider is an OAuth 2.0 login provider.
type IdentityProvider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for the caller's identity.
	Exchange(ctx context.Context, code string) (*OAuthUserInfo, error)
}
