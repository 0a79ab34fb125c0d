package repository

import (
	"context"

	"github.com/ventry/ventry/internal/domain/model"
)

// ManagerRepository describes persistence operations for staff accounts.
type ManagerRepository interface {
	Create(ctx context.Context, manager *model.Manager) (*model.Manager, error)
	GetByEmail(ctx context.Context, email string) (*model.Manager, error)
	GetByID(ctx context.Context, id string) (*model.Manager, error)
	List(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error)
	DeleteByEmail(ctx context.Context, email string) error
}
