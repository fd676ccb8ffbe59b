package inventory

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
	"github.com/louisbranch/unclutter.space/internal/platform/id"
)

// MaxCategoryNameLength is the longest accepted category name.
const MaxCategoryNameLength = 15

var (
	// ErrCategoryNameEmpty indicates a missing category name.
	ErrCategoryNameEmpty = apperrors.WithMetadata(apperrors.CodeCategoryNameEmpty,
		"category name is required", map[string]string{"Field": "name"})
	// ErrCategoryNameTooLong indicates a category name over the limit.
	ErrCategoryNameTooLong = apperrors.WithMetadata(apperrors.CodeCategoryNameTooLong,
		"category name must be 15 characters or less", map[string]string{"Field": "name"})
)

var upperCaser = cases.Upper(language.Und)

// Category groups items under a per-user label. Names are stored
// lower-case and unique per (user, name).
type Category struct {
	ID        string
	UserID    string
	Name      string // stored lower-case
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the stored name with its first letter capitalized.
func (c Category) DisplayName() string {
	return CapitalizeCategoryName(c.Name)
}

// CapitalizeCategoryName upper-cases the leading rune for display.
func CapitalizeCategoryName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	return upperCaser.String(string(runes[0])) + string(runes[1:])
}

// NormalizeCategoryName trims, validates, and lower-cases a category name
// for storage.
func NormalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrCategoryNameEmpty
	}
	if len([]rune(name)) > MaxCategoryNameLength {
		return "", ErrCategoryNameTooLong
	}
	return strings.ToLower(name), nil
}

// CreateCategory creates a new category with a generated ID and timestamps.
func CreateCategory(userID string, name string, now func() time.Time, idGenerator func() (string, error)) (Category, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Category{}, fmt.Errorf("user id is required")
	}

	normalized, err := NormalizeCategoryName(name)
	if err != nil {
		return Category{}, err
	}

	categoryID, err := idGenerator()
	if err != nil {
		return Category{}, fmt.Errorf("generate category id: %w", err)
	}

	createdAt := now().UTC()
	return Category{
		ID:        categoryID,
		UserID:    userID,
		Name:      normalized,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}
