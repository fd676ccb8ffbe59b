// Package session issues and verifies the signed, expiring credential
// that identifies an anonymous account.
//
// Credentials are stateless: validity is proven by signature and expiry
// alone, nothing is stored server-side. A tampered or expired token is
// indistinguishable from a missing one to callers, so verification
// failures never leak why a token was rejected.
package session

import (
	"fmt"
	"time"

	"github.com/louisbranch/unclutter.space/internal/platform/config"
)

// minSecretLength guards against trivially brute-forceable signing keys.
const minSecretLength = 16

// DefaultTTL is how long an issued credential stays valid.
const DefaultTTL = 14 * 24 * time.Hour

// envConfig holds raw env values before post-parse validation.
type envConfig struct {
	Secret string        `env:"UNCLUTTER_SESSION_SECRET"`
	TTL    time.Duration `env:"UNCLUTTER_SESSION_TTL" envDefault:"336h"`
}

// Config defines how session credentials are signed and verified.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// LoadConfigFromEnv reads credential signing configuration. The signing
// secret is required so a missing value fails at startup instead of
// silently signing with an empty key.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw envConfig
	if err := config.ParseEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("parse session env: %w", err)
	}
	if raw.Secret == "" {
		return Config{}, fmt.Errorf("UNCLUTTER_SESSION_SECRET is required")
	}
	if len(raw.Secret) < minSecretLength {
		return Config{}, fmt.Errorf("UNCLUTTER_SESSION_SECRET must be at least %d bytes", minSecretLength)
	}
	ttl := raw.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Secret: []byte(raw.Secret),
		TTL:    ttl,
		Now:    now,
	}, nil
}
