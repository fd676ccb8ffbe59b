// Package seed builds the starter categories and demo items given to
// every new temp user.
package seed

import (
	"fmt"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/platform/id"
)

// presetCategoryNames are the starter categories, stored lower-case.
var presetCategoryNames = []string{
	"wardrobe",
	"kitchen",
	"sentimental",
	"electronics",
	"decor & collectibles",
	"hobby & craft",
}

// demoItem describes one starter item relative to the seeding instant.
type demoItem struct {
	name         string
	deadlineFrom func(now time.Time) time.Time
}

var demoItems = []demoItem{
	{"That one thing", func(now time.Time) time.Time { return now.AddDate(0, 3, 0) }},
	{"That other thing", func(now time.Time) time.Time { return now.AddDate(0, 0, 6) }},
	{"That one thing that I never used", func(now time.Time) time.Time { return now.AddDate(0, 0, -1) }},
}

// PresetCategories returns the starter categories for a new user. The
// values are constructed directly rather than through the user-facing
// create path: presets are trusted fixtures, and some ("decor &
// collectibles") are longer than the name limit applied to user input.
func PresetCategories(userID string, now func() time.Time, idGenerator func() (string, error)) ([]inventory.Category, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	categories := make([]inventory.Category, 0, len(presetCategoryNames))
	seededAt := now().UTC()
	for _, name := range presetCategoryNames {
		categoryID, err := idGenerator()
		if err != nil {
			return nil, fmt.Errorf("generate seed category id: %w", err)
		}
		categories = append(categories, inventory.Category{
			ID:        categoryID,
			UserID:    userID,
			Name:      name,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		})
	}
	return categories, nil
}

// DemoItems returns the starter items for a new user. One of them is
// already overdue so the first visit shows every deadline state.
func DemoItems(userID string, now func() time.Time, idGenerator func() (string, error)) ([]inventory.Item, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	items := make([]inventory.Item, 0, len(demoItems))
	seededAt := now().UTC()
	for _, demo := range demoItems {
		itemID, err := idGenerator()
		if err != nil {
			return nil, fmt.Errorf("generate demo item id: %w", err)
		}
		items = append(items, inventory.Item{
			ID:        itemID,
			UserID:    userID,
			Name:      demo.name,
			Pieces:    1,
			StartDate: seededAt,
			Deadline:  demo.deadlineFrom(seededAt),
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		})
	}
	return items, nil
}
