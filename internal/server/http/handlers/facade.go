package handlers

import (
	"context"

	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
	"github.com/ventry/ventry/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, email, password string) (*usecase.Account, string, error)
	ParseToken(token string) (*pkgAuth.Claims, error)
}

// CustomerFacade covers customer signup and verification.
type CustomerFacade interface {
	SignupCustomer(ctx context.Context, email, password, firstName, lastName string) (*model.Customer, error)
	VerifyCustomerOTP(ctx context.Context, email, code string) (*model.Customer, error)
	ResendCustomerOTP(ctx context.Context, email string) error
}

// ManagerFacade covers staff administration.
type ManagerFacade interface {
	CreateManager(ctx context.Context, email, password, firstName, lastName string) (*model.Manager, error)
	Managers(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error)
	DeleteManager(ctx context.Context, email string) error
}

// CarFacade covers inventory operations.
type CarFacade interface {
	CreateCar(ctx context.Context, input usecase.CarInput) (*model.Car, error)
	Car(ctx context.Context, id string) (*model.Car, error)
	Cars(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error)
	UpdateCar(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error)
	DeleteCar(ctx context.Context, id string) error
	AddCarPhotos(ctx context.Context, id string, urls []string) (*model.Car, error)
	RemoveCarPhoto(ctx context.Context, id, url string) (*model.Car, error)
}

// CategoryFacade covers category operations.
type CategoryFacade interface {
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	Category(ctx context.Context, id string) (*model.Category, error)
	Categories(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// PurchaseFacade covers the purchase lifecycle.
type PurchaseFacade interface {
	InitiatePurchase(ctx context.Context, customerID, carID, email string) (*model.Purchase, *paystack.Authorization, error)
	ConfirmPurchase(ctx context.Context, reference string) (*model.Purchase, error)
	HandlePaymentWebhook(ctx context.Context, body []byte, signature string) error
	Purchase(ctx context.Context, reference string) (*model.Purchase, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	CustomerFacade
	ManagerFacade
	CarFacade
	CategoryFacade
	PurchaseFacade
}
