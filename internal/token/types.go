package token

import "time"

// Token type constants
const (
	TokenTypeBearer = "Bearer"
)

// Result is the outcome of a token generation call.
type Result struct {
	TokenString string
	TokenType   string
	ExpiresAt   time.Time
	Claims      map[string]any
}

// ValidationResult is the outcome of a token validation call.
type ValidationResult struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
	Claims    map[string]any
}
