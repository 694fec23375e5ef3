// Package jwttoken issues and verifies the short-lived anti-forgery tokens
// the storefront sends with ajax validation requests.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "vatchecker/pkg/domain-errors"
)

const (
	issuer   = "vatchecker"
	audience = "vatchecker-form"
)

// Claims represents the JWT claims of a form token.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService handles form token creation and validation.
type JWTService struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures the JWTService.
type Option func(*JWTService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

func NewJWTService(signingKey string, ttl time.Duration, opts ...Option) (*JWTService, error) {
	if signingKey == "" {
		return nil, errors.New("signing key is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	s := &JWTService{signingKey: []byte(signingKey), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue mints a token valid for the configured ttl.
func (s *JWTService) Issue() (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  []string{audience},
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, issuer, audience and expiry.
func (s *JWTService) ValidateToken(tokenString string) error {
	if tokenString == "" {
		return dErrors.New(dErrors.CodeForbidden, "missing token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dErrors.New(dErrors.CodeForbidden, "token has expired")
		}
		return dErrors.New(dErrors.CodeForbidden, "invalid token")
	}
	if !parsed.Valid {
		return dErrors.New(dErrors.CodeForbidden, "invalid token")
	}
	return nil
}
