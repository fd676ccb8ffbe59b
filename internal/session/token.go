package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the internal claims type used for JWT parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Service signs and verifies session credentials.
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewService creates a credential service from validated configuration.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", minSecretLength)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	clock := cfg.Now
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		secret: cfg.Secret,
		ttl:    ttl,
		clock:  clock,
	}, nil
}

// Issue produces a signed HS256 token embedding the user id and expiry.
func (s *Service) Issue(userID string) (token string, expiresAt time.Time, err error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}

	now := s.clock().UTC()
	expiresAt = now.Add(s.ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Every parse, signature, or expiry failure collapses to ok=false; callers
// must treat an invalid token exactly like an absent one.
func (s *Service) Verify(raw string) (userID string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return s.clock().UTC() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(parsed.UserID) == "" {
		return "", false
	}
	return parsed.UserID, true
}

// TTL returns the configured credential lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
