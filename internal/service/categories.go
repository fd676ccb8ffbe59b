package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/unclutter.space/internal/errors"
	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/storage"
)

var (
	// ErrCategoryExists indicates the user already has a category with
	// that name.
	ErrCategoryExists = apperrors.WithMetadata(apperrors.CodeCategoryExists,
		"This category already exists", map[string]string{"Field": "name"})
	// ErrCategoryInUse blocks deleting a category that still has items.
	ErrCategoryInUse = apperrors.New(apperrors.CodeCategoryInUse,
		"Category is used by items")
)

// ListCategories returns the user's categories ordered by name.
func (s *Service) ListCategories(ctx context.Context, userID string) ([]inventory.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory validates and persists a new category for the user.
func (s *Service) CreateCategory(ctx context.Context, userID, name string) (inventory.Category, error) {
	category, err := inventory.CreateCategory(userID, name, s.clock, s.idGenerator)
	if err != nil {
		return inventory.Category{}, err
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return inventory.Category{}, ErrCategoryExists
		}
		return inventory.Category{}, fmt.Errorf("persist category: %w", err)
	}
	return category, nil
}

// RenameCategory changes a category's name, keeping per-user uniqueness.
func (s *Service) RenameCategory(ctx context.Context, userID, categoryID, name string) error {
	normalized, err := inventory.NormalizeCategoryName(name)
	if err != nil {
		return err
	}

	if err := s.store.RenameCategory(ctx, userID, categoryID, normalized, s.clock().UTC()); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			return ErrCategoryExists
		case errors.Is(err, storage.ErrNotFound):
			return apperrors.New(apperrors.CodeNotFound, "category not found")
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// DeleteCategory removes an empty category. A category still referenced
// by items is rejected; the caller must move or delete those items
// first.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	count, err := s.store.CountItemsInCategory(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("count items in category: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.store.DeleteCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "category not found")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
