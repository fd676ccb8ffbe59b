// Package inventory provides the item and category domain model for the
// personal inventory tracker.
package inventory

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
	"github.com/louisbranch/unclutter.space/internal/platform/id"
)

// MinItemNameLength is the shortest accepted item name after trimming.
const MinItemNameLength = 2

var (
	// ErrNameTooShort indicates an item name below the minimum length.
	ErrNameTooShort = apperrors.WithMetadata(apperrors.CodeItemNameTooShort,
		"name must be at least 2 characters long", map[string]string{"Field": "name"})
	// ErrInvalidPieces indicates a non-positive piece count.
	ErrInvalidPieces = apperrors.WithMetadata(apperrors.CodeItemInvalidPieces,
		"must be at least 1 piece", map[string]string{"Field": "pieces"})
	// ErrInvalidDeadline indicates a deadline outside the accepted range.
	ErrInvalidDeadline = apperrors.WithMetadata(apperrors.CodeItemInvalidDeadline,
		"invalid deadline", map[string]string{"Field": "deadline"})
)

// Item represents a tracked possession with a let-go deadline.
type Item struct {
	ID         string
	UserID     string
	Name       string
	Pieces     int
	StartDate  time.Time
	Deadline   time.Time
	CategoryID string     // empty when uncategorized
	ArchivedAt *time.Time // nil while the item is active
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Archived reports whether the item has been let go.
func (i Item) Archived() bool {
	return i.ArchivedAt != nil
}

// CreateItemInput describes the fields needed to create an item.
// The deadline is expressed in whole months from now.
type CreateItemInput struct {
	Name           string
	Pieces         int
	DeadlineMonths int
	CategoryID     string
}

// NormalizeCreateItemInput trims and validates item creation input.
func NormalizeCreateItemInput(input CreateItemInput) (CreateItemInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if len([]rune(input.Name)) < MinItemNameLength {
		return CreateItemInput{}, ErrNameTooShort
	}
	if input.Pieces < 1 {
		return CreateItemInput{}, ErrInvalidPieces
	}
	if input.DeadlineMonths < 1 {
		return CreateItemInput{}, ErrInvalidDeadline
	}
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	return input, nil
}

// CreateItem creates a new item with a generated ID and timestamps. The
// start date is set to now and the deadline resolved from the month count.
func CreateItem(userID string, input CreateItemInput, now func() time.Time, idGenerator func() (string, error)) (Item, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Item{}, fmt.Errorf("user id is required")
	}

	normalized, err := NormalizeCreateItemInput(input)
	if err != nil {
		return Item{}, err
	}

	itemID, err := idGenerator()
	if err != nil {
		return Item{}, fmt.Errorf("generate item id: %w", err)
	}

	createdAt := now().UTC()
	return Item{
		ID:         itemID,
		UserID:     userID,
		Name:       normalized.Name,
		Pieces:     normalized.Pieces,
		StartDate:  createdAt,
		Deadline:   createdAt.AddDate(0, normalized.DeadlineMonths, 0),
		CategoryID: normalized.CategoryID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil
}

// ItemPatch carries partial item updates. Nil fields are left unchanged.
// A non-nil empty CategoryID clears the category reference.
type ItemPatch struct {
	Name       *string
	Pieces     *int
	Deadline   *time.Time
	CategoryID *string
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Pieces == nil && p.Deadline == nil && p.CategoryID == nil
}

// Validate checks the populated patch fields.
func (p ItemPatch) Validate() error {
	if p.Name != nil && len([]rune(strings.TrimSpace(*p.Name))) < MinItemNameLength {
		return ErrNameTooShort
	}
	if p.Pieces != nil && *p.Pieces < 1 {
		return ErrInvalidPieces
	}
	if p.Deadline != nil && p.Deadline.IsZero() {
		return ErrInvalidDeadline
	}
	return nil
}

// ApplyPatch returns a copy of item with the patch applied. Changing the
// deadline restarts the countdown by resetting the start date.
func ApplyPatch(item Item, patch ItemPatch, now func() time.Time) Item {
	if now == nil {
		now = time.Now
	}
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Pieces != nil {
		item.Pieces = *patch.Pieces
	}
	if patch.Deadline != nil && !patch.Deadline.Equal(item.Deadline) {
		item.Deadline = patch.Deadline.UTC()
		item.StartDate = now().UTC()
	}
	if patch.CategoryID != nil {
		item.CategoryID = strings.TrimSpace(*patch.CategoryID)
	}
	item.UpdatedAt = now().UTC()
	return item
}
