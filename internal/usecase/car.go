package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
)

// CarUseCase handles inventory administration and browsing.
type CarUseCase struct {
	cars       repository.CarRepository
	categories repository.CategoryRepository
}

// NewCarUseCase constructs CarUseCase.
func NewCarUseCase(cars repository.CarRepository, categories repository.CategoryRepository) *CarUseCase {
	return &CarUseCase{cars: cars, categories: categories}
}

// CarInput carries the fields for a new listing.
type CarInput struct {
	Brand        string
	Model        string
	Price        float64
	CategoryID   string
	Year         int
	Mileage      int
	FuelType     model.FuelType
	Transmission model.Transmission
	Color        string
	Photos       []string
}

func validFuelType(f model.FuelType) bool {
	switch f {
	case model.FuelPetrol, model.FuelDiesel, model.FuelElectric, model.FuelHybrid:
		return true
	}
	return false
}

func validTransmission(tr model.Transmission) bool {
	return tr == model.TransmissionAutomatic || tr == model.TransmissionManual
}

// Create adds a car listing. New listings start available.
func (u *CarUseCase) Create(ctx context.Context, input CarInput) (*model.Car, error) {
	input.Brand = strings.TrimSpace(input.Brand)
	input.Model = strings.TrimSpace(input.Model)
	if input.Brand == "" || input.Model == "" || input.Price <= 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	if !ValidateYear(input.Year) || !validFuelType(input.FuelType) || !validTransmission(input.Transmission) {
		return nil, domainErrors.ErrInvalidInput
	}

	if _, err := u.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidInput
		}
		return nil, err
	}

	photos := input.Photos
	if photos == nil {
		photos = []string{}
	}

	return u.cars.Create(ctx, &model.Car{
		ID:           uuid.NewString(),
		Brand:        input.Brand,
		Model:        input.Model,
		Price:        input.Price,
		IsAvailable:  true,
		CategoryID:   input.CategoryID,
		Year:         input.Year,
		Mileage:      input.Mileage,
		FuelType:     input.FuelType,
		Transmission: input.Transmission,
		Color:        strings.TrimSpace(input.Color),
		Photos:       photos,
	})
}

// GetByID fetches a car listing.
func (u *CarUseCase) GetByID(ctx context.Context, id string) (*model.Car, error) {
	return u.cars.GetByID(ctx, id)
}

// List returns a filtered page of cars with the total count.
func (u *CarUseCase) List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	return u.cars.List(ctx, filter)
}

// Update applies partial changes to a listing.
func (u *CarUseCase) Update(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error) {
	if update.Price != nil && *update.Price <= 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	if update.Year != nil && !ValidateYear(*update.Year) {
		return nil, domainErrors.ErrInvalidInput
	}
	if update.FuelType != nil && !validFuelType(model.FuelType(*update.FuelType)) {
		return nil, domainErrors.ErrInvalidInput
	}
	if update.Transmission != nil && !validTransmission(model.Transmission(*update.Transmission)) {
		return nil, domainErrors.ErrInvalidInput
	}
	if update.CategoryID != nil {
		if _, err := u.categories.GetByID(ctx, *update.CategoryID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrInvalidInput
			}
			return nil, err
		}
	}
	return u.cars.Update(ctx, id, update)
}

// Delete removes a listing.
func (u *CarUseCase) Delete(ctx context.Context, id string) error {
	return u.cars.Delete(ctx, id)
}

// AddPhotos appends photo URLs to a listing.
func (u *CarUseCase) AddPhotos(ctx context.Context, id string, urls []string) (*model.Car, error) {
	if len(urls) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			return nil, domainErrors.ErrInvalidInput
		}
	}
	return u.cars.AddPhotos(ctx, id, urls)
}

// RemovePhoto removes a single photo URL from a listing.
func (u *CarUseCase) RemovePhoto(ctx context.Context, id, url string) (*model.Car, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.cars.RemovePhoto(ctx, id, url)
}
