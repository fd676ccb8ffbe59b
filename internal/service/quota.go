package service

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
)

// ErrQuotaLimitReached signals that the free-tier item cap blocks the
// create. It is a dedicated error kind, not a field validation failure,
// so the UI can show an upgrade prompt instead of an inline error.
var ErrQuotaLimitReached = apperrors.New(apperrors.CodeQuotaLimitReached,
	"free tier item limit reached")

// CheckCreateAllowed verifies that adding the given number of items keeps
// the user's active item count within the plan limit.
//
// The count is taken fresh on every call, never cached across creates.
// No lock is held between counting and inserting, so a burst of k
// concurrent creates from the same user can overshoot the limit by at
// most k-1. That bounded race is accepted: items, not funds, are at
// stake, and serializing every create against a per-user lock is not
// worth it.
func (s *Service) CheckCreateAllowed(ctx context.Context, userID string, adding int) error {
	if s.store == nil {
		return fmt.Errorf("store is not configured")
	}
	if adding < 1 {
		adding = 1
	}

	count, err := s.store.CountActiveItems(ctx, userID)
	if err != nil {
		return fmt.Errorf("count active items: %w", err)
	}
	if count+adding > s.itemLimit {
		return ErrQuotaLimitReached
	}
	return nil
}
