package model

import "time"

// FuelType enumerates supported engine fuel kinds.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// Transmission enumerates gearbox kinds.
type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// Car describes a vehicle listing. IsAvailable flips to false only as a
// side effect of a purchase reaching completed status.
type Car struct {
	ID           string
	Brand        string
	Model        string
	Price        float64
	IsAvailable  bool
	CategoryID   string
	Year         int
	Mileage      int
	FuelType     FuelType
	Transmission Transmission
	Color        string
	Photos       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CarFilter narrows car listing queries.
type CarFilter struct {
	Brand        string
	Model        string
	MinPrice     *float64
	MaxPrice     *float64
	IsAvailable  *bool
	CategoryID   string
	MinYear      *int
	MaxYear      *int
	FuelType     string
	Transmission string
	Color        string
	Search       string
	Page         int
	Limit        int
	Sort         string
}
