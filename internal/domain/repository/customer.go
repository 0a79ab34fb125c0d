package repository

import (
	"context"

	"github.com/ventry/ventry/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	MarkVerified(ctx context.Context, email string) (*model.Customer, error)
}
