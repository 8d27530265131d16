package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the lifetime of an issued session token.
const DefaultTTL = 4 * time.Hour

// ErrUnauthorized is returned for missing, malformed, expired, wrongly signed or revoked tokens.
var ErrUnauthorized = errors.New("unauthorized")

// Claims carries the single identity fact embedded in a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist *redis.Client
	now      func() time.Time
}

// Option customises a TokenService.
type Option func(*TokenService)

// WithDenylist enables revocation checks backed by redis.
func WithDenylist(client *redis.Client) Option {
	return func(s *TokenService) {
		s.denylist = client
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService builds a token service. A non-positive ttl falls back to DefaultTTL.
func NewTokenService(secret string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	service := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Issue signs a token for the given email.
func (s *TokenService) Issue(email string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", time.Time{}, fmt.Errorf("email claim is required")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its claims.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, ErrUnauthorized
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrUnauthorized
	}

	if strings.TrimSpace(claims.Email) == "" {
		return Claims{}, ErrUnauthorized
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to check token denylist: %w", err)
	}
	if revoked {
		return Claims{}, ErrUnauthorized
	}

	return claims, nil
}

// Revoke denylists the token until it would have expired on its own.
func (s *TokenService) Revoke(ctx context.Context, claims Claims) error {
	if s.denylist == nil || claims.ID == "" {
		return nil
	}

	remaining := time.Minute
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Sub(s.now())
	}
	if remaining <= 0 {
		return nil
	}

	return s.denylist.Set(ctx, denylistKey(claims.ID), "1", remaining).Err()
}

func (s *TokenService) isRevoked(ctx context.Context, id string) (bool, error) {
	if s.denylist == nil || id == "" {
		return false, nil
	}

	count, err := s.denylist.Exists(ctx, denylistKey(id)).Result()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func denylistKey(id string) string {
	return "auth:denylist:" + id
}
