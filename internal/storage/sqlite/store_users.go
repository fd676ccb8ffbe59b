package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

// CreateUser persists a new anonymous user.
func (s *Store) CreateUser(ctx context.Context, user inventory.User) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, created_at) VALUES (?, ?)`,
		user.ID, toMillis(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (inventory.User, error) {
	if s == nil || s.sqlDB == nil {
		return inventory.User{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return inventory.User{}, fmt.Errorf("user id is required")
	}

	var user inventory.User
	var createdAt int64
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, created_at FROM users WHERE id = ?`, userID,
	)
	if err := row.Scan(&user.ID, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return inventory.User{}, storage.ErrNotFound
		}
		return inventory.User{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}

// DeleteUsersCreatedBefore bulk-deletes users older than the cutoff.
// Items and categories follow through cascading foreign keys.
func (s *Store) DeleteUsersCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM users WHERE created_at < ?`,
		toMillis(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}
