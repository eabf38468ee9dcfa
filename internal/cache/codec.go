package cache

import (
	"encoding/json"
	"fmt"
)

// Redis-backed caches store values as JSON strings so any serialisable
// type (user profiles, catalog song lists, counters) shares one codec.

func encode[T any](value T) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return string(b), nil
}

func decode[T any](raw string) (T, error) {
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return value, nil
}

func prefixed(prefix string, keys []string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = prefix + key
	}
	return out
}
