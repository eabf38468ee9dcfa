package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NathanBartolo/echo/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTProvider issues and verifies HS256 bearer tokens. Tokens are stateless
// and cannot be revoked before they expire.
type JWTProvider struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewJWTProvider creates a token provider from configuration
func NewJWTProvider(cfg *config.Config) *JWTProvider {
	return &JWTProvider{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.BaseURL,
		expiration: cfg.JWTExpiration,
	}
}

// GenerateToken signs a token carrying the user's id and role
func (p *JWTProvider) GenerateToken(
	ctx context.Context,
	userID, role string,
) (*Result, error) {
	now := time.Now()
	expiresAt := now.Add(p.expiration)
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  p.issuer,
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{
		TokenString: tokenString,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
		Claims:      claims,
	}, nil
}

// ValidateToken verifies the signature and expiry of tokenString
func (p *JWTProvider) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*ValidationResult, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &ValidationResult{
		UserID:    userID,
		Role:      role,
		ExpiresAt: exp.Time,
		Claims:    claims,
	}, nil
}

// Name returns provider name for logging
func (p *JWTProvider) Name() string {
	return "jwt"
}
