package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")

	// OAuth errors
	ErrOAuthExchange = errors.New("failed to exchange authorization code")
	ErrOAuthUserInfo = errors.New("failed to fetch user info")
)
