package util

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomBytes generates n cryptographically secure random bytes
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomURLString returns n random bytes encoded with the URL-safe base64 alphabet
func RandomURLString(n int) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
