package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/seed"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

// CreateTempUser provisions a new anonymous account and seeds it with
// the preset categories and demo items. Seeding is best effort: a user
// with an empty inventory is still a usable account, so seed failures
// are logged rather than surfaced.
func (s *Service) CreateTempUser(ctx context.Context) (inventory.User, error) {
	user, err := inventory.CreateUser(s.clock, s.idGenerator)
	if err != nil {
		return inventory.User{}, err
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return inventory.User{}, fmt.Errorf("persist user: %w", err)
	}

	if err := s.seedUser(ctx, user.ID); err != nil {
		log.Printf("seed user %s: %v", user.ID, err)
	}
	return user, nil
}

func (s *Service) seedUser(ctx context.Context, userID string) error {
	categories, err := seed.PresetCategories(userID, s.clock, s.idGenerator)
	if err != nil {
		return err
	}
	if err := s.store.CreateCategories(ctx, categories); err != nil {
		return fmt.Errorf("persist preset categories: %w", err)
	}

	items, err := seed.DemoItems(userID, s.clock, s.idGenerator)
	if err != nil {
		return err
	}
	if err := s.store.CreateItems(ctx, items); err != nil {
		return fmt.Errorf("persist demo items: %w", err)
	}
	return nil
}

// UserExists reports whether the account behind a verified credential
// still exists. Credentials outlive reaped accounts (the token TTL is
// longer than the retention window), so signature checks alone are not
// enough.
func (s *Service) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up user: %w", err)
	}
	return true, nil
}

// ReapExpiredUsers deletes anonymous accounts older than the retention
// window along with their items and categories. It returns the number
// of accounts removed.
func (s *Service) ReapExpiredUsers(ctx context.Context) (int64, error) {
	cutoff := s.clock().UTC().Add(-s.retention)
	removed, err := s.store.DeleteUsersCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reap expired users: %w", err)
	}
	return removed, nil
}
