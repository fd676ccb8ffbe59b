// Package storage defines persistence contracts for the inventory
// tracker. Every operation is scoped by the owning user id; a guessed
// item or category id under another user behaves exactly like a missing
// row.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
)

var (
	// ErrNotFound indicates the requested row does not exist for the
	// scoping user. Callers must not be able to tell whether the id
	// exists under someone else.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
)

// ItemFilter narrows an item listing.
type ItemFilter struct {
	Search     string // case-insensitive name substring
	CategoryID string
	Archived   bool // list archived items instead of active ones
}

// ItemPage is one page of a filtered item listing.
type ItemPage struct {
	Items []inventory.Item
	Total int
}

// ItemStore persists items. Listings are ordered by most recently
// updated first, tie-broken by soonest deadline.
type ItemStore interface {
	CreateItem(ctx context.Context, item inventory.Item) error
	CreateItems(ctx context.Context, items []inventory.Item) error
	ListItems(ctx context.Context, userID string, filter ItemFilter, page, pageSize int) (ItemPage, error)
	GetItem(ctx context.Context, userID, itemID string) (inventory.Item, error)
	UpdateItem(ctx context.Context, item inventory.Item) error
	DeleteItem(ctx context.Context, userID, itemID string) error
	ArchiveItem(ctx context.Context, userID, itemID string, archivedAt time.Time) error
	CountActiveItems(ctx context.Context, userID string) (int, error)
	CountItemsInCategory(ctx context.Context, userID, categoryID string) (int, error)
}

// CategoryStore persists categories, unique per (user, name).
type CategoryStore interface {
	CreateCategory(ctx context.Context, category inventory.Category) error
	CreateCategories(ctx context.Context, categories []inventory.Category) error
	ListCategories(ctx context.Context, userID string) ([]inventory.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID, name string, updatedAt time.Time) error
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// UserStore persists anonymous accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user inventory.User) error
	GetUser(ctx context.Context, userID string) (inventory.User, error)
	DeleteUsersCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store groups all persistence contracts backing the tracker.
type Store interface {
	ItemStore
	CategoryStore
	UserStore
}
