package store

import "errors"

var (
	// ErrRecordNotFound wraps backend not-found errors for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an email address or Google id is
	// already registered
	ErrDuplicateKey = errors.New("duplicate key")
)
