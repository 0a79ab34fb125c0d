package app

import (
	"context"
	"time"

	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
	"github.com/ventry/ventry/internal/usecase"
)

// MarketplaceFacade aggregates the use cases behind one surface consumed
// by the HTTP handlers and the reconciliation worker.
type MarketplaceFacade struct {
	auth       *usecase.AuthUseCase
	customers  *usecase.CustomerUseCase
	managers   *usecase.ManagerUseCase
	cars       *usecase.CarUseCase
	categories *usecase.CategoryUseCase
	purchases  *usecase.PurchaseUseCase
}

// NewMarketplaceFacade constructs the facade.
func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	customers *usecase.CustomerUseCase,
	managers *usecase.ManagerUseCase,
	cars *usecase.CarUseCase,
	categories *usecase.CategoryUseCase,
	purchases *usecase.PurchaseUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:       auth,
		customers:  customers,
		managers:   managers,
		cars:       cars,
		categories: categories,
		purchases:  purchases,
	}
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (*usecase.Account, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (*pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) SignupCustomer(ctx context.Context, email, password, firstName, lastName string) (*model.Customer, error) {
	return f.customers.Signup(ctx, email, password, firstName, lastName)
}

func (f *MarketplaceFacade) VerifyCustomerOTP(ctx context.Context, email, code string) (*model.Customer, error) {
	return f.customers.VerifyOTP(ctx, email, code)
}

func (f *MarketplaceFacade) ResendCustomerOTP(ctx context.Context, email string) error {
	return f.customers.ResendOTP(ctx, email)
}

func (f *MarketplaceFacade) CreateManager(ctx context.Context, email, password, firstName, lastName string) (*model.Manager, error) {
	return f.managers.Create(ctx, email, password, firstName, lastName)
}

func (f *MarketplaceFacade) Managers(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error) {
	return f.managers.List(ctx, filter)
}

func (f *MarketplaceFacade) DeleteManager(ctx context.Context, email string) error {
	return f.managers.DeleteByEmail(ctx, email)
}

func (f *MarketplaceFacade) CreateCar(ctx context.Context, input usecase.CarInput) (*model.Car, error) {
	return f.cars.Create(ctx, input)
}

func (f *MarketplaceFacade) Car(ctx context.Context, id string) (*model.Car, error) {
	return f.cars.GetByID(ctx, id)
}

func (f *MarketplaceFacade) Cars(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	return f.cars.List(ctx, filter)
}

func (f *MarketplaceFacade) UpdateCar(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error) {
	return f.cars.Update(ctx, id, update)
}

func (f *MarketplaceFacade) DeleteCar(ctx context.Context, id string) error {
	return f.cars.Delete(ctx, id)
}

func (f *MarketplaceFacade) AddCarPhotos(ctx context.Context, id string, urls []string) (*model.Car, error) {
	return f.cars.AddPhotos(ctx, id, urls)
}

func (f *MarketplaceFacade) RemoveCarPhoto(ctx context.Context, id, url string) (*model.Car, error) {
	return f.cars.RemovePhoto(ctx, id, url)
}

func (f *MarketplaceFacade) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	return f.categories.Create(ctx, name, description)
}

func (f *MarketplaceFacade) Category(ctx context.Context, id string) (*model.Category, error) {
	return f.categories.GetByID(ctx, id)
}

func (f *MarketplaceFacade) Categories(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error) {
	return f.categories.List(ctx, filter)
}

func (f *MarketplaceFacade) UpdateCategory(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error) {
	return f.categories.Update(ctx, id, update)
}

func (f *MarketplaceFacade) DeleteCategory(ctx context.Context, id string) error {
	return f.categories.Delete(ctx, id)
}

func (f *MarketplaceFacade) InitiatePurchase(ctx context.Context, customerID, carID, email string) (*model.Purchase, *paystack.Authorization, error) {
	return f.purchases.Initiate(ctx, customerID, carID, email)
}

func (f *MarketplaceFacade) ConfirmPurchase(ctx context.Context, reference string) (*model.Purchase, error) {
	return f.purchases.ConfirmCallback(ctx, reference)
}

func (f *MarketplaceFacade) HandlePaymentWebhook(ctx context.Context, body []byte, signature string) error {
	return f.purchases.HandleWebhook(ctx, body, signature)
}

func (f *MarketplaceFacade) Purchase(ctx context.Context, reference string) (*model.Purchase, error) {
	return f.purchases.GetByReference(ctx, reference)
}

func (f *MarketplaceFacade) StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	return f.purchases.StalePending(ctx, olderThan, limit)
}
