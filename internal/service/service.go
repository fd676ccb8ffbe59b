// Package service implements the inventory operations behind the HTTP
// transport: item and category CRUD, the free-tier quota gate, and
// temp-user provisioning with retention-based reaping.
package service

import (
	"time"

	"github.com/louisbranch/unclutter.space/internal/platform/config"
	"github.com/louisbranch/unclutter.space/internal/platform/id"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

// DefaultFreeTierItemLimit caps active items per free-tier account.
const DefaultFreeTierItemLimit = 13

// DefaultRetentionDays is how long temp users are kept before reaping.
const DefaultRetentionDays = 10

// Config defines the service limits.
type Config struct {
	FreeTierItemLimit int `env:"UNCLUTTER_FREE_TIER_ITEM_LIMIT" envDefault:"13"`
	RetentionDays     int `env:"UNCLUTTER_USER_RETENTION_DAYS" envDefault:"10"`
}

// LoadConfigFromEnv reads service limits from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Service coordinates domain rules with the persistence layer.
type Service struct {
	store       storage.Store
	itemLimit   int
	retention   time.Duration
	clock       func() time.Time
	idGenerator func() (string, error)
}

// New creates a Service with default clock and id generation.
func New(store storage.Store, cfg Config) *Service {
	itemLimit := cfg.FreeTierItemLimit
	if itemLimit <= 0 {
		itemLimit = DefaultFreeTierItemLimit
	}
	retentionDays := cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{
		store:       store,
		itemLimit:   itemLimit,
		retention:   time.Duration(retentionDays) * 24 * time.Hour,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// ItemLimit returns the configured free-tier item limit.
func (s *Service) ItemLimit() int {
	return s.itemLimit
}
