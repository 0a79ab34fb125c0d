package repository

import (
	"context"

	"github.com/ventry/ventry/internal/domain/model"
)

// CategoryUpdate carries mutable category fields; nil means unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// CategoryRepository describes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error)
	Update(ctx context.Context, id string, update CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}
