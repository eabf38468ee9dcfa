package services

import "errors"

// Kind classifies a service failure for the transport layer
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a client-facing failure. Message is safe to return to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err when it is (or wraps) a service Error
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// Accounts
var (
	ErrMissingFields          = newError(KindBadRequest, "Missing fields")
	ErrEmailInUse             = newError(KindConflict, "Email already in use")
	ErrInvalidCredentials     = newError(KindUnauthorized, "Invalid credentials")
	ErrSocialLoginOnly        = newError(KindUnauthorized, "Use social login for this account")
	ErrNotAuthorized          = newError(KindUnauthorized, "Not authorized")
	ErrAdminOnly              = newError(KindForbidden, "Admin only")
	ErrUserNotFound           = newError(KindNotFound, "User not found")
	ErrPasswordsRequired      = newError(KindBadRequest, "Current and new password required")
	ErrSocialPasswordChange   = newError(KindBadRequest, "Cannot change password for social login accounts")
	ErrWrongCurrentPassword   = newError(KindUnauthorized, "Current password is incorrect")
	ErrAvatarRequired         = newError(KindBadRequest, "Avatar URL required")
	ErrPasswordRequiredDelete = newError(KindBadRequest, "Password required to delete account")
	ErrIncorrectPassword      = newError(KindUnauthorized, "Incorrect password")
	ErrInvalidRole            = newError(KindBadRequest, "Invalid role")
	ErrPasswordTooLong        = newError(KindBadRequest, "Password must be at most 72 bytes")
)

// Playlists
var (
	ErrForbidden            = newError(KindForbidden, "Forbidden")
	ErrPlaylistNotFound     = newError(KindNotFound, "Playlist not found")
	ErrPlaylistNameRequired = newError(KindBadRequest, "Playlist name required")
	ErrSongDataRequired     = newError(KindBadRequest, "Song data required")
	ErrInvalidSongOrder     = newError(KindBadRequest, "Song ids must list every song in the playlist exactly once")
)

// Favorites
var (
	ErrFavoriteExists = newError(KindConflict, "Song already in favorites")
	ErrSongIDRequired = newError(KindBadRequest, "Song ID required")
)
