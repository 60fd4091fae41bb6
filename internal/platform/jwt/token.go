// Package jwtmw issues and verifies session tokens and provides the gin
// middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when a request carries no token.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken is returned for any token that fails verification:
	// bad signature, malformed structure, wrong algorithm, missing or passed expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the user reference embedded in a token.
type Identity struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...}} plus registered claims.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a single secret.
type Service struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for iat/exp and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a token Service from cfg.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		now:        time.Now,
	}
	if s.expiration <= 0 {
		s.expiration = DefaultExpiration
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for userID valid for the configured expiration.
func (s *Service) Issue(userID string) (string, error) {
	return s.IssueWithTTL(userID, s.expiration)
}

// IssueWithTTL signs a token for userID valid for ttl.
func (s *Service) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("failed to sign token: empty user id")
	}

	now := s.now()
	claims := Claims{
		User: Identity{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks tokenStr and returns its claims, or ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; this also rejects "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.User.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
