package repository

import (
	"context"

	"github.com/ventry/ventry/internal/domain/model"
)

// CarUpdate carries the mutable car fields; nil means "leave unchanged".
type CarUpdate struct {
	Brand        *string
	Model        *string
	Price        *float64
	IsAvailable  *bool
	CategoryID   *string
	Year         *int
	Mileage      *int
	FuelType     *string
	Transmission *string
	Color        *string
}

// CarRepository describes persistence operations for car listings.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	GetByID(ctx context.Context, id string) (*model.Car, error)
	List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error)
	Update(ctx context.Context, id string, update CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id string) error
	AddPhotos(ctx context.Context, id string, urls []string) (*model.Car, error)
	RemovePhoto(ctx context.Context, id string, url string) (*model.Car, error)
}
