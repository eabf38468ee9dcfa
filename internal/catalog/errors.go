package catalog

import "errors"

var (
	// ErrNotFound is returned by Lookup when the id does not resolve to a track
	ErrNotFound = errors.New("catalog: song not found")

	// ErrUpstream wraps transport failures and unexpected upstream responses
	ErrUpstream = errors.New("catalog: upstream request failed")
)
