package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

// ItemListing is one page of a user's items with paging metadata.
type ItemListing struct {
	Items      []inventory.Item
	Total      int
	TotalPages int
	Page       int
}

// ListItems returns one page of the user's items.
func (s *Service) ListItems(ctx context.Context, userID string, filter storage.ItemFilter, page, pageSize int) (ItemListing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	result, err := s.store.ListItems(ctx, userID, filter, page, pageSize)
	if err != nil {
		return ItemListing{}, fmt.Errorf("list items: %w", err)
	}

	totalPages := (result.Total + pageSize - 1) / pageSize
	return ItemListing{
		Items:      result.Items,
		Total:      result.Total,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

// CreateItem validates input, re-checks the quota gate, and persists a
// new item. The gate runs before any write: on limitReached nothing is
// stored.
func (s *Service) CreateItem(ctx context.Context, userID string, input inventory.CreateItemInput) (inventory.Item, error) {
	if err := s.CheckCreateAllowed(ctx, userID, 1); err != nil {
		return inventory.Item{}, err
	}

	item, err := inventory.CreateItem(userID, input, s.clock, s.idGenerator)
	if err != nil {
		return inventory.Item{}, err
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return inventory.Item{}, fmt.Errorf("persist item: %w", err)
	}
	return item, nil
}

// ImportItems validates and persists a batch of items behind one quota
// check covering the whole batch.
func (s *Service) ImportItems(ctx context.Context, userID string, inputs []inventory.CreateItemInput) ([]inventory.Item, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if err := s.CheckCreateAllowed(ctx, userID, len(inputs)); err != nil {
		return nil, err
	}

	items := make([]inventory.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := inventory.CreateItem(userID, input, s.clock, s.idGenerator)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := s.store.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("persist items: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial update to an item owned by the user. An
// id under another user is indistinguishable from a missing one.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, patch inventory.ItemPatch) (inventory.Item, error) {
	if err := patch.Validate(); err != nil {
		return inventory.Item{}, err
	}

	item, err := s.store.GetItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inventory.Item{}, apperrors.New(apperrors.CodeNotFound, "item not found")
		}
		return inventory.Item{}, fmt.Errorf("load item: %w", err)
	}

	updated := inventory.ApplyPatch(item, patch, s.clock)
	if err := s.store.UpdateItem(ctx, updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inventory.Item{}, apperrors.New(apperrors.CodeNotFound, "item not found")
		}
		return inventory.Item{}, fmt.Errorf("persist item update: %w", err)
	}
	return updated, nil
}

// DeleteItem removes an item owned by the user.
func (s *Service) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := s.store.DeleteItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "item not found")
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ArchiveItem soft-deletes an item owned by the user for the let-go
// workflow. Archived items stop counting against the quota.
func (s *Service) ArchiveItem(ctx context.Context, userID, itemID string) error {
	if err := s.store.ArchiveItem(ctx, userID, itemID, s.clock().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "item not found")
		}
		return fmt.Errorf("archive item: %w", err)
	}
	return nil
}
