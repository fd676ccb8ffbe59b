package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

// CreateCategory persists a new category. A (user, name) collision is
// reported as storage.ErrConflict.
func (s *Store) CreateCategory(ctx context.Context, category inventory.Category) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.UserID,
		category.Name,
		toMillis(category.CreatedAt),
		toMillis(category.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CreateCategories persists a batch of categories inside one transaction.
func (s *Store) CreateCategories(ctx context.Context, categories []inventory.Category) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(categories) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create categories: %w", err)
	}
	for _, category := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, user_id, name, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			category.ID,
			category.UserID,
			category.Name,
			toMillis(category.CreatedAt),
			toMillis(category.UpdatedAt),
		); err != nil {
			_ = tx.Rollback()
			if isUniqueViolation(err) {
				return storage.ErrConflict
			}
			return fmt.Errorf("insert category %s: %w", category.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create categories: %w", err)
	}
	return nil
}

// ListCategories returns a user's categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]inventory.Category, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM categories
		 WHERE user_id = ?
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []inventory.Category
	for rows.Next() {
		var category inventory.Category
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		category.CreatedAt = fromMillis(createdAt)
		category.UpdatedAt = fromMillis(updatedAt)
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// RenameCategory updates a category name scoped by owner.
func (s *Store) RenameCategory(ctx context.Context, userID, categoryID, name string, updatedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE categories SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		name, toMillis(updatedAt), categoryID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteCategory removes a category row scoped by owner. Referencing
// items are the service layer's concern; the schema clears dangling
// references as a backstop.
func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`,
		categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRowAffected(result)
}
