package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
)

// CategoryUseCase handles category administration and browsing.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

// NewCategoryUseCase constructs CategoryUseCase.
func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

// Create adds a category. Names are unique.
func (u *CategoryUseCase) Create(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.categories.Create(ctx, &model.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
	})
}

// GetByID fetches a category.
func (u *CategoryUseCase) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return u.categories.GetByID(ctx, id)
}

// List returns a page of categories with the total count.
func (u *CategoryUseCase) List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error) {
	return u.categories.List(ctx, filter)
}

// Update applies partial changes to a category.
func (u *CategoryUseCase) Update(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, domainErrors.ErrInvalidInput
		}
		update.Name = &trimmed
	}
	return u.categories.Update(ctx, id, update)
}

// Delete removes a category.
func (u *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return u.categories.Delete(ctx, id)
}
