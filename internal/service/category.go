package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prolixy/prolixy/internal/apperr"
	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

const maxCategoryNameLength = 120

// CategoryService is the gatekeeper for every category mutation. The storage
// layer carries no validation of its own beyond the unique index on name.
type CategoryService struct {
	store storage.Store
}

func NewCategoryService(store storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// ListAll returns all categories ordered by name ascending.
func (s *CategoryService) ListAll(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, apperr.NewStorage("failed to list categories", err)
	}
	return categories, nil
}

// GetByID returns the category for id or a NotFoundError.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, apperr.NewStorage("failed to fetch category", err)
	}
	if category == nil {
		return nil, apperr.NewNotFound("Category not found.")
	}
	return category, nil
}

// Create validates and normalizes the raw name, enforces case-insensitive
// uniqueness and persists a new category.
func (s *CategoryService) Create(ctx context.Context, rawName string) (*models.Category, error) {
	name, err := normalizeCategoryName(rawName)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameIsUnique(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := models.NewCategory(name)
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return nil, apperr.NewConflict("Category with this name already exists.")
		}
		return nil, apperr.NewStorage("failed to create category", err)
	}

	return category, nil
}

// Update renames a category. A rename to the same name under case-insensitive
// comparison skips the uniqueness check, so self-renames always succeed.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, rawName string) (*models.Category, error) {
	current, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, apperr.NewStorage("failed to fetch category", err)
	}
	if current == nil {
		return nil, apperr.NewNotFound("Category not found.")
	}

	name, err := normalizeCategoryName(rawName)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(current.Name, name) {
		if err := s.ensureNameIsUnique(ctx, name, id); err != nil {
			return nil, err
		}
	}

	found, err := s.store.UpdateCategoryName(ctx, id, name, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return nil, apperr.NewConflict("Category with this name already exists.")
		}
		return nil, apperr.NewStorage("failed to update category", err)
	}
	if !found {
		return nil, apperr.NewNotFound("Category not found.")
	}

	// Re-fetch so the response reflects the committed row.
	updated, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, apperr.NewStorage("failed to fetch category", err)
	}
	if updated == nil {
		return nil, apperr.NewNotFound("Category not found.")
	}

	return updated, nil
}

// Delete removes a category unconditionally and returns the deleted id.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	deleted, err := s.store.DeleteCategory(ctx, id)
	if err != nil {
		return uuid.Nil, apperr.NewStorage("failed to delete category", err)
	}
	if !deleted {
		return uuid.Nil, apperr.NewNotFound("Category not found.")
	}
	return id, nil
}

func (s *CategoryService) ensureNameIsUnique(ctx context.Context, name string, currentID uuid.UUID) error {
	existing, err := s.store.GetCategoryByName(ctx, name)
	if err != nil {
		return apperr.NewStorage("failed to check category name", err)
	}
	if existing != nil && existing.ID != currentID {
		return apperr.NewConflict("Category with this name already exists.")
	}
	return nil
}

func normalizeCategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperr.NewValidation("Category name cannot be empty.")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return "", apperr.NewValidation("Category name must be at most 120 characters.")
	}
	return name, nil
}
