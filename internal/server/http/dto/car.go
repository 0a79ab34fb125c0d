package dto

import (
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// CreateCarRequest describes a new listing payload.
type CreateCarRequest struct {
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Price        float64  `json:"price"`
	CategoryID   string   `json:"categoryId"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage"`
	FuelType     string   `json:"fuelType"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	Photos       []string `json:"photos"`
}

// UpdateCarRequest carries partial listing changes; absent fields are left
// unchanged.
type UpdateCarRequest struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Price        *float64 `json:"price"`
	IsAvailable  *bool    `json:"isAvailable"`
	CategoryID   *string  `json:"categoryId"`
	Year         *int     `json:"year"`
	Mileage      *int     `json:"mileage"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	Color        *string  `json:"color"`
}

// CarPhotosRequest appends photo URLs to a listing.
type CarPhotosRequest struct {
	Photos []string `json:"photos"`
}

// CarResponse describes a listing.
type CarResponse struct {
	ID           string    `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Price        float64   `json:"price"`
	IsAvailable  bool      `json:"isAvailable"`
	CategoryID   string    `json:"categoryId"`
	Year         int       `json:"year"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuelType"`
	Transmission string    `json:"transmission"`
	Color        string    `json:"color"`
	Photos       []string  `json:"photos"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CarListResponse pages listings.
type CarListResponse struct {
	Cars  []CarResponse `json:"cars"`
	Total int           `json:"total"`
}

// NewCarResponse maps a car model to its response shape.
func NewCarResponse(car *model.Car) CarResponse {
	photos := car.Photos
	if photos == nil {
		photos = []string{}
	}
	return CarResponse{
		ID:           car.ID,
		Brand:        car.Brand,
		Model:        car.Model,
		Price:        car.Price,
		IsAvailable:  car.IsAvailable,
		CategoryID:   car.CategoryID,
		Year:         car.Year,
		Mileage:      car.Mileage,
		FuelType:     string(car.FuelType),
		Transmission: string(car.Transmission),
		Color:        car.Color,
		Photos:       photos,
		CreatedAt:    car.CreatedAt,
		UpdatedAt:    car.UpdatedAt,
	}
}
