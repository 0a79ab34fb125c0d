// Package facades holds stub implementations of the application facade for
// HTTP-layer tests. They live apart from the repository and adapter stubs
// because they speak in use-case types, which the use-case tests themselves
// must not depend on.
package facades

import (
	"context"

	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
	"github.com/ventry/ventry/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (*usecase.Account, string, error)
	ParseFn        func(string) (*pkgAuth.Claims, error)
}

// Authenticate returns account and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*usecase.Account, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &usecase.Account{ID: "user-1", Email: email, Role: model.RoleCustomer}, "token", nil
}

// ParseToken returns stored claims for authenticated account.
func (s AuthFacadeStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Claims{UserID: "user-1", Role: model.RoleCustomer}, nil
}

// CustomerFacadeStub provides controllable behaviour for signup endpoints.
type CustomerFacadeStub struct {
	SignupFn func(context.Context, string, string, string, string) (*model.Customer, error)
	VerifyFn func(context.Context, string, string) (*model.Customer, error)
	ResendFn func(context.Context, string) error
}

// SignupCustomer delegates to the override or returns a default customer.
func (s CustomerFacadeStub) SignupCustomer(ctx context.Context, email, password, firstName, lastName string) (*model.Customer, error) {
	if s.SignupFn != nil {
		return s.SignupFn(ctx, email, password, firstName, lastName)
	}
	return &model.Customer{ID: "customer-1", Email: email, FirstName: firstName, LastName: lastName}, nil
}

// VerifyCustomerOTP delegates to the override or returns a verified customer.
func (s CustomerFacadeStub) VerifyCustomerOTP(ctx context.Context, email, code string) (*model.Customer, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, email, code)
	}
	return &model.Customer{ID: "customer-1", Email: email, IsVerified: true}, nil
}

// ResendCustomerOTP executes configured handler.
func (s CustomerFacadeStub) ResendCustomerOTP(ctx context.Context, email string) error {
	if s.ResendFn != nil {
		return s.ResendFn(ctx, email)
	}
	return nil
}

// ManagerFacadeStub simulates staff administration.
type ManagerFacadeStub struct {
	CreateFn func(context.Context, string, string, string, string) (*model.Manager, error)
	ListFn   func(context.Context, model.ManagerFilter) ([]model.Manager, int, error)
	DeleteFn func(context.Context, string) error
}

// CreateManager returns a stored manager for successful scenarios.
func (s ManagerFacadeStub) CreateManager(ctx context.Context, email, password, firstName, lastName string) (*model.Manager, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, email, password, firstName, lastName)
	}
	return &model.Manager{ID: "manager-1", Email: email, Role: model.RoleManager}, nil
}

// Managers returns preconfigured listing.
func (s ManagerFacadeStub) Managers(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Manager{{ID: "manager-1", Email: "m@ventry.dev", Role: model.RoleManager}}, 1, nil
}

// DeleteManager executes configured handler.
func (s ManagerFacadeStub) DeleteManager(ctx context.Context, email string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, email)
	}
	return nil
}

// CarFacadeStub simulates inventory operations.
type CarFacadeStub struct {
	CreateFn      func(context.Context, usecase.CarInput) (*model.Car, error)
	GetFn         func(context.Context, string) (*model.Car, error)
	ListFn        func(context.Context, model.CarFilter) ([]model.Car, int, error)
	UpdateFn      func(context.Context, string, repository.CarUpdate) (*model.Car, error)
	DeleteFn      func(context.Context, string) error
	AddPhotosFn   func(context.Context, string, []string) (*model.Car, error)
	RemovePhotoFn func(context.Context, string, string) (*model.Car, error)
}

// CreateCar returns a listing built from the input.
func (s CarFacadeStub) CreateCar(ctx context.Context, input usecase.CarInput) (*model.Car, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input)
	}
	return &model.Car{ID: "car-1", Brand: input.Brand, Model: input.Model, Price: input.Price, IsAvailable: true}, nil
}

// Car returns a default listing.
func (s CarFacadeStub) Car(ctx context.Context, id string) (*model.Car, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Car{ID: id, Brand: "Toyota", Model: "Corolla", IsAvailable: true}, nil
}

// Cars returns preconfigured listing.
func (s CarFacadeStub) Cars(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Car{{ID: "car-1", Brand: "Toyota", Model: "Corolla"}}, 1, nil
}

// UpdateCar executes configured handler.
func (s CarFacadeStub) UpdateCar(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return &model.Car{ID: id}, nil
}

// DeleteCar executes configured handler.
func (s CarFacadeStub) DeleteCar(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// AddCarPhotos executes configured handler.
func (s CarFacadeStub) AddCarPhotos(ctx context.Context, id string, urls []string) (*model.Car, error) {
	if s.AddPhotosFn != nil {
		return s.AddPhotosFn(ctx, id, urls)
	}
	return &model.Car{ID: id, Photos: urls}, nil
}

// RemoveCarPhoto executes configured handler.
func (s CarFacadeStub) RemoveCarPhoto(ctx context.Context, id, url string) (*model.Car, error) {
	if s.RemovePhotoFn != nil {
		return s.RemovePhotoFn(ctx, id, url)
	}
	return &model.Car{ID: id}, nil
}

// CategoryFacadeStub simulates category operations.
type CategoryFacadeStub struct {
	CreateFn func(context.Context, string, string) (*model.Category, error)
	GetFn    func(context.Context, string) (*model.Category, error)
	ListFn   func(context.Context, model.CategoryFilter) ([]model.Category, int, error)
	UpdateFn func(context.Context, string, repository.CategoryUpdate) (*model.Category, error)
	DeleteFn func(context.Context, string) error
}

// CreateCategory returns a stored category for successful scenarios.
func (s CategoryFacadeStub) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, description)
	}
	return &model.Category{ID: "category-1", Name: name, Description: description}, nil
}

// Category returns a default category.
func (s CategoryFacadeStub) Category(ctx context.Context, id string) (*model.Category, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Category{ID: id, Name: "SUV"}, nil
}

// Categories returns preconfigured listing.
func (s CategoryFacadeStub) Categories(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Category{{ID: "category-1", Name: "SUV"}}, 1, nil
}

// UpdateCategory executes configured handler.
func (s CategoryFacadeStub) UpdateCategory(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return &model.Category{ID: id}, nil
}

// DeleteCategory executes configured handler.
func (s CategoryFacadeStub) DeleteCategory(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// PurchaseFacadeStub simulates the purchase lifecycle.
type PurchaseFacadeStub struct {
	InitiateFn func(context.Context, string, string, string) (*model.Purchase, *paystack.Authorization, error)
	ConfirmFn  func(context.Context, string) (*model.Purchase, error)
	WebhookFn  func(context.Context, []byte, string) error
	GetFn      func(context.Context, string) (*model.Purchase, error)
}

// InitiatePurchase returns a pending purchase with checkout handle.
func (s PurchaseFacadeStub) InitiatePurchase(ctx context.Context, customerID, carID, email string) (*model.Purchase, *paystack.Authorization, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, customerID, carID, email)
	}
	purchase := &model.Purchase{Reference: "ventry_ref", CustomerID: customerID, CarID: carID, Amount: 25000, Status: model.PaymentStatusPending}
	auth := &paystack.Authorization{AuthorizationURL: "https://checkout.example/ventry_ref", AccessCode: "access", Reference: "ventry_ref"}
	return purchase, auth, nil
}

// ConfirmPurchase returns a completed purchase for successful scenarios.
func (s PurchaseFacadeStub) ConfirmPurchase(ctx context.Context, reference string) (*model.Purchase, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, reference)
	}
	return &model.Purchase{Reference: reference, Status: model.PaymentStatusCompleted}, nil
}

// HandlePaymentWebhook executes configured handler.
func (s PurchaseFacadeStub) HandlePaymentWebhook(ctx context.Context, body []byte, signature string) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, body, signature)
	}
	return nil
}

// Purchase returns a stored purchase record.
func (s PurchaseFacadeStub) Purchase(ctx context.Context, reference string) (*model.Purchase, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, reference)
	}
	return &model.Purchase{Reference: reference, Status: model.PaymentStatusPending}, nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	CustomerFacadeStub
	ManagerFacadeStub
	CarFacadeStub
	CategoryFacadeStub
	PurchaseFacadeStub
}
