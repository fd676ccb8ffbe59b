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

const itemColumns = `id, user_id, name, pieces, start_date, deadline, category_id, archived_at, created_at, updated_at`

// CreateItem persists a new item row.
func (s *Store) CreateItem(ctx context.Context, item inventory.Item) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.UserID,
		item.Name,
		item.Pieces,
		toMillis(item.StartDate),
		toMillis(item.Deadline),
		nullableString(item.CategoryID),
		nullableMillis(item.ArchivedAt),
		toMillis(item.CreatedAt),
		toMillis(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// CreateItems persists a batch of items inside one transaction.
func (s *Store) CreateItems(ctx context.Context, items []inventory.Item) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(items) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create items: %w", err)
	}
	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (`+itemColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.UserID,
			item.Name,
			item.Pieces,
			toMillis(item.StartDate),
			toMillis(item.Deadline),
			nullableString(item.CategoryID),
			nullableMillis(item.ArchivedAt),
			toMillis(item.CreatedAt),
			toMillis(item.UpdatedAt),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create items: %w", err)
	}
	return nil
}

// ListItems returns one page of a user's items ordered by most recently
// updated first, tie-broken by soonest deadline.
func (s *Store) ListItems(ctx context.Context, userID string, filter storage.ItemFilter, page, pageSize int) (storage.ItemPage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.ItemPage{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.ItemPage{}, fmt.Errorf("user id is required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where, args := itemWhereClause(userID, filter)

	var total int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM items `+where, args...)
	if err := row.Scan(&total); err != nil {
		return storage.ItemPage{}, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items ` + where +
		` ORDER BY updated_at DESC, deadline ASC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.ItemPage{}, fmt.Errorf("list items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []inventory.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return storage.ItemPage{}, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return storage.ItemPage{}, fmt.Errorf("iterate items: %w", err)
	}

	return storage.ItemPage{Items: items, Total: total}, nil
}

// GetItem loads a single item scoped by owner.
func (s *Store) GetItem(ctx context.Context, userID, itemID string) (inventory.Item, error) {
	if s == nil || s.sqlDB == nil {
		return inventory.Item{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	item, err := scanItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return inventory.Item{}, storage.ErrNotFound
		}
		return inventory.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// UpdateItem rewrites an item row scoped by (id, owner). A row that does
// not belong to the caller is reported as storage.ErrNotFound, never
// silently updated.
func (s *Store) UpdateItem(ctx context.Context, item inventory.Item) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE items
		 SET name = ?, pieces = ?, start_date = ?, deadline = ?, category_id = ?, archived_at = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		item.Name,
		item.Pieces,
		toMillis(item.StartDate),
		toMillis(item.Deadline),
		nullableString(item.CategoryID),
		nullableMillis(item.ArchivedAt),
		toMillis(item.UpdatedAt),
		item.ID,
		item.UserID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteItem removes an item row scoped by owner.
func (s *Store) DeleteItem(ctx context.Context, userID, itemID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireRowAffected(result)
}

// ArchiveItem soft-deletes an item by stamping archived_at, scoped by owner.
func (s *Store) ArchiveItem(ctx context.Context, userID, itemID string, archivedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	stamp := toMillis(archivedAt)
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE items SET archived_at = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		stamp, stamp, itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("archive item: %w", err)
	}
	return requireRowAffected(result)
}

// CountActiveItems counts a user's non-archived items for the quota gate.
func (s *Store) CountActiveItems(ctx context.Context, userID string) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ? AND archived_at IS NULL`,
		userID,
	)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count active items: %w", err)
	}
	return count, nil
}

// CountItemsInCategory counts items referencing a category.
func (s *Store) CountItemsInCategory(ctx context.Context, userID, categoryID string) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ? AND category_id = ?`,
		userID, categoryID,
	)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count items in category: %w", err)
	}
	return count, nil
}

// itemWhereClause builds the shared filter for counting and listing.
func itemWhereClause(userID string, filter storage.ItemFilter) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}

	if filter.Archived {
		clauses = append(clauses, "archived_at IS NOT NULL")
	} else {
		clauses = append(clauses, "archived_at IS NULL")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses, "instr(lower(name), lower(?)) > 0")
		args = append(args, search)
	}
	if categoryID := strings.TrimSpace(filter.CategoryID); categoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, categoryID)
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanItem(scan func(dest ...any) error) (inventory.Item, error) {
	var item inventory.Item
	var startDate int64
	var deadline int64
	var categoryID sql.NullString
	var archivedAt sql.NullInt64
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Pieces,
		&startDate,
		&deadline,
		&categoryID,
		&archivedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return inventory.Item{}, err
	}
	item.StartDate = fromMillis(startDate)
	item.Deadline = fromMillis(deadline)
	if categoryID.Valid {
		item.CategoryID = categoryID.String
	}
	if archivedAt.Valid {
		stamp := fromMillis(archivedAt.Int64)
		item.ArchivedAt = &stamp
	}
	item.CreatedAt = fromMillis(createdAt)
	item.UpdatedAt = fromMillis(updatedAt)
	return item, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableMillis(value *time.Time) any {
	if value == nil {
		return nil
	}
	return toMillis(*value)
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
