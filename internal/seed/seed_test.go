package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
)

func sequentialIDs(prefix string) func() (string, error) {
	counter := 0
	return func() (string, error) {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter), nil
	}
}

func TestPresetCategories(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	categories, err := PresetCategories("user-1", func() time.Time { return now }, sequentialIDs("cat"))
	if err != nil {
		t.Fatalf("preset categories: %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("len = %d, want 6", len(categories))
	}
	names := make(map[string]bool)
	for _, category := range categories {
		if category.UserID != "user-1" {
			t.Fatalf("user id = %q, want user-1", category.UserID)
		}
		names[category.Name] = true
	}
	for _, want := range []string{"wardrobe", "kitchen", "sentimental", "electronics", "decor & collectibles", "hobby & craft"} {
		if !names[want] {
			t.Fatalf("missing preset category %q", want)
		}
	}
}

func TestPresetCategoriesBypassUserNameLimit(t *testing.T) {
	longest := "decor & collectibles"
	if len([]rune(longest)) <= inventory.MaxCategoryNameLength {
		t.Fatalf("preset %q no longer exceeds the user input limit; update this test", longest)
	}

	categories, err := PresetCategories("user-1", nil, sequentialIDs("cat"))
	if err != nil {
		t.Fatalf("preset categories: %v", err)
	}
	found := false
	for _, category := range categories {
		if category.Name == longest {
			found = true
		}
	}
	if !found {
		t.Fatalf("preset %q missing from seed output", longest)
	}
}

func TestDemoItems(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items, err := DemoItems("user-1", func() time.Time { return now }, sequentialIDs("item"))
	if err != nil {
		t.Fatalf("demo items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if !items[0].Deadline.Equal(now.AddDate(0, 3, 0)) {
		t.Fatalf("first deadline = %s, want +3 months", items[0].Deadline)
	}
	if !items[1].Deadline.Equal(now.AddDate(0, 0, 6)) {
		t.Fatalf("second deadline = %s, want +6 days", items[1].Deadline)
	}
	if !items[2].Deadline.Before(now) {
		t.Fatalf("third deadline = %s, want overdue", items[2].Deadline)
	}
	for _, item := range items {
		if item.UserID != "user-1" {
			t.Fatalf("user id = %q, want user-1", item.UserID)
		}
		if item.Pieces != 1 {
			t.Fatalf("pieces = %d, want 1", item.Pieces)
		}
	}
}
