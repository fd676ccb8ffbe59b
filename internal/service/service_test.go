package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

type fakeStore struct {
	users      map[string]inventory.User
	items      map[string]inventory.Item
	categories map[string]inventory.Category

	createItemErr error
	createUserErr error
	seedErr       error

	reapedBefore time.Time
	reapCount    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]inventory.User),
		items:      make(map[string]inventory.Item),
		categories: make(map[string]inventory.Category),
	}
}

func (f *fakeStore) CreateItem(_ context.Context, item inventory.Item) error {
	if f.createItemErr != nil {
		return f.createItemErr
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) CreateItems(_ context.Context, items []inventory.Item) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return nil
}

func (f *fakeStore) ListItems(_ context.Context, userID string, filter storage.ItemFilter, page, pageSize int) (storage.ItemPage, error) {
	var matched []inventory.Item
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		if item.Archived() != filter.Archived {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.CategoryID != "" && item.CategoryID != filter.CategoryID {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].Deadline.Before(matched[j].Deadline)
	})
	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return storage.ItemPage{Items: matched[start:end], Total: total}, nil
}

func (f *fakeStore) GetItem(_ context.Context, userID, itemID string) (inventory.Item, error) {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return inventory.Item{}, storage.ErrNotFound
	}
	return item, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, item inventory.Item) error {
	existing, ok := f.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return storage.ErrNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, userID, itemID string) error {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return storage.ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeStore) ArchiveItem(_ context.Context, userID, itemID string, archivedAt time.Time) error {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return storage.ErrNotFound
	}
	item.ArchivedAt = &archivedAt
	f.items[itemID] = item
	return nil
}

func (f *fakeStore) CountActiveItems(_ context.Context, userID string) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.UserID == userID && !item.Archived() {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountItemsInCategory(_ context.Context, userID, categoryID string) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.UserID == userID && item.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, category inventory.Category) error {
	for _, existing := range f.categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return storage.ErrConflict
		}
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeStore) CreateCategories(_ context.Context, categories []inventory.Category) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	for _, category := range categories {
		f.categories[category.ID] = category
	}
	return nil
}

func (f *fakeStore) ListCategories(_ context.Context, userID string) ([]inventory.Category, error) {
	var matched []inventory.Category
	for _, category := range f.categories {
		if category.UserID == userID {
			matched = append(matched, category)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (f *fakeStore) RenameCategory(_ context.Context, userID, categoryID, name string, updatedAt time.Time) error {
	category, ok := f.categories[categoryID]
	if !ok || category.UserID != userID {
		return storage.ErrNotFound
	}
	for id, existing := range f.categories {
		if id != categoryID && existing.UserID == userID && existing.Name == name {
			return storage.ErrConflict
		}
	}
	category.Name = name
	category.UpdatedAt = updatedAt
	f.categories[categoryID] = category
	return nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, userID, categoryID string) error {
	category, ok := f.categories[categoryID]
	if !ok || category.UserID != userID {
		return storage.ErrNotFound
	}
	delete(f.categories, categoryID)
	return nil
}

func (f *fakeStore) CreateUser(_ context.Context, user inventory.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (inventory.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return inventory.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) DeleteUsersCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.reapedBefore = cutoff
	return f.reapCount, nil
}

func newTestService(store storage.Store, cfg Config) *Service {
	svc := New(store, cfg)
	svc.clock = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	counter := 0
	svc.idGenerator = func() (string, error) {
		counter++
		return fmt.Sprintf("id-%d", counter), nil
	}
	return svc
}

func TestCreateItemAndList(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "user-1", inventory.CreateItemInput{
		Name:           "Box",
		Pieces:         2,
		DeadlineMonths: 6,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Name != "Box" {
		t.Fatalf("name = %q, want %q", item.Name, "Box")
	}
	if item.Pieces != 2 {
		t.Fatalf("pieces = %d, want 2", item.Pieces)
	}
	wantDeadline := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	if !item.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %s, want %s", item.Deadline, wantDeadline)
	}

	listing, err := svc.ListItems(ctx, "user-1", storage.ItemFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if listing.Total != 1 {
		t.Fatalf("total = %d, want 1", listing.Total)
	}
	if len(listing.Items) != 1 || listing.Items[0].ID != item.ID {
		t.Fatalf("listing = %+v, want the created item", listing.Items)
	}
	if listing.TotalPages != 1 {
		t.Fatalf("total pages = %d, want 1", listing.TotalPages)
	}
}

func TestCreateItemInvalidInputNotStored(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, "user-1", inventory.CreateItemInput{
		Name:           "X",
		Pieces:         1,
		DeadlineMonths: 1,
	})
	if !errors.Is(err, inventory.ErrNameTooShort) {
		t.Fatalf("err = %v, want name too short", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("items stored = %d, want 0", len(store.items))
	}
}

func TestQuotaLimitBoundary(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{FreeTierItemLimit: 3})
	ctx := context.Background()

	input := inventory.CreateItemInput{Name: "Box", Pieces: 1, DeadlineMonths: 1}
	for i := 0; i < 2; i++ {
		if _, err := svc.CreateItem(ctx, "user-1", input); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// At limit-1 the gate still allows the create.
	if _, err := svc.CreateItem(ctx, "user-1", input); err != nil {
		t.Fatalf("create at limit-1: %v", err)
	}

	// At the limit it refuses and nothing is stored.
	_, err := svc.CreateItem(ctx, "user-1", input)
	if !errors.Is(err, ErrQuotaLimitReached) {
		t.Fatalf("err = %v, want quota limit reached", err)
	}
	count, _ := store.CountActiveItems(ctx, "user-1")
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestQuotaIsPerUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{FreeTierItemLimit: 1})
	ctx := context.Background()

	input := inventory.CreateItemInput{Name: "Box", Pieces: 1, DeadlineMonths: 1}
	if _, err := svc.CreateItem(ctx, "user-1", input); err != nil {
		t.Fatalf("user-1 create: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "user-2", input); err != nil {
		t.Fatalf("user-2 create: %v", err)
	}
}

func TestArchiveFreesQuota(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{FreeTierItemLimit: 1})
	ctx := context.Background()

	input := inventory.CreateItemInput{Name: "Box", Pieces: 1, DeadlineMonths: 1}
	item, err := svc.CreateItem(ctx, "user-1", input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "user-1", input); !errors.Is(err, ErrQuotaLimitReached) {
		t.Fatalf("err = %v, want quota limit reached", err)
	}

	if err := svc.ArchiveItem(ctx, "user-1", item.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "user-1", input); err != nil {
		t.Fatalf("create after archive: %v", err)
	}
}

func TestImportItemsQuotaCoversBatch(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{FreeTierItemLimit: 2})
	ctx := context.Background()

	inputs := []inventory.CreateItemInput{
		{Name: "Box", Pieces: 1, DeadlineMonths: 1},
		{Name: "Lamp", Pieces: 1, DeadlineMonths: 2},
		{Name: "Rug", Pieces: 1, DeadlineMonths: 3},
	}
	_, err := svc.ImportItems(ctx, "user-1", inputs)
	if !errors.Is(err, ErrQuotaLimitReached) {
		t.Fatalf("err = %v, want quota limit reached", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("items stored = %d, want 0", len(store.items))
	}

	items, err := svc.ImportItems(ctx, "user-1", inputs[:2])
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("imported = %d, want 2", len(items))
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	name := "Renamed box"
	_, err := svc.UpdateItem(ctx, "user-1", "missing", inventory.ItemPatch{Name: &name})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateItemOtherUserLooksMissing(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "user-1", inventory.CreateItemInput{Name: "Box", Pieces: 1, DeadlineMonths: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Stolen"
	_, err = svc.UpdateItem(ctx, "user-2", item.ID, inventory.ItemPatch{Name: &name})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
	if store.items[item.ID].Name != "Box" {
		t.Fatalf("name = %q, want untouched", store.items[item.ID].Name)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "user-1", "Books"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err := svc.CreateCategory(ctx, "user-1", "  BOOKS ")
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("err = %v, want category exists", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "user-1", "books")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "user-1", inventory.CreateItemInput{
		Name:           "Novel",
		Pieces:         1,
		DeadlineMonths: 1,
		CategoryID:     category.ID,
	}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	err = svc.DeleteCategory(ctx, "user-1", category.ID)
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("err = %v, want category in use", err)
	}
	if _, ok := store.categories[category.ID]; !ok {
		t.Fatal("category was deleted, want kept")
	}

	if err := svc.DeleteItem(ctx, "user-1", store.itemIDForName("Novel")); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := svc.DeleteCategory(ctx, "user-1", category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
}

func TestRenameCategoryConflict(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "user-1", "books"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	other, err := svc.CreateCategory(ctx, "user-1", "tools")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	err = svc.RenameCategory(ctx, "user-1", other.ID, "Books")
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("err = %v, want category exists", err)
	}
}

func TestCreateTempUserSeeds(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	user, err := svc.CreateTempUser(ctx)
	if err != nil {
		t.Fatalf("create temp user: %v", err)
	}
	if _, ok := store.users[user.ID]; !ok {
		t.Fatal("user not stored")
	}

	categories, err := svc.ListCategories(ctx, user.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("categories = %d, want 6", len(categories))
	}

	listing, err := svc.ListItems(ctx, user.ID, storage.ItemFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if listing.Total != 3 {
		t.Fatalf("items = %d, want 3", listing.Total)
	}
}

func TestCreateTempUserSeedFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.seedErr = errors.New("disk full")
	svc := newTestService(store, Config{})

	user, err := svc.CreateTempUser(context.Background())
	if err != nil {
		t.Fatalf("create temp user: %v", err)
	}
	if _, ok := store.users[user.ID]; !ok {
		t.Fatal("user not stored")
	}
}

func TestUserExists(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, Config{})
	ctx := context.Background()

	user, err := svc.CreateTempUser(ctx)
	if err != nil {
		t.Fatalf("create temp user: %v", err)
	}

	exists, err := svc.UserExists(ctx, user.ID)
	if err != nil {
		t.Fatalf("user exists: %v", err)
	}
	if !exists {
		t.Fatal("exists = false, want true")
	}

	exists, err = svc.UserExists(ctx, "reaped")
	if err != nil {
		t.Fatalf("user exists: %v", err)
	}
	if exists {
		t.Fatal("exists = true, want false")
	}
}

func TestReapExpiredUsers(t *testing.T) {
	store := newFakeStore()
	store.reapCount = 4
	svc := newTestService(store, Config{RetentionDays: 10})

	removed, err := svc.ReapExpiredUsers(context.Background())
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}
	wantCutoff := time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)
	if !store.reapedBefore.Equal(wantCutoff) {
		t.Fatalf("cutoff = %s, want %s", store.reapedBefore, wantCutoff)
	}
}

func TestConfigDefaults(t *testing.T) {
	svc := New(newFakeStore(), Config{})
	if svc.ItemLimit() != DefaultFreeTierItemLimit {
		t.Fatalf("limit = %d, want %d", svc.ItemLimit(), DefaultFreeTierItemLimit)
	}
	if svc.retention != time.Duration(DefaultRetentionDays)*24*time.Hour {
		t.Fatalf("retention = %s, want %d days", svc.retention, DefaultRetentionDays)
	}
}

func (f *fakeStore) itemIDForName(name string) string {
	for id, item := range f.items {
		if item.Name == name {
			return id
		}
	}
	return ""
}
