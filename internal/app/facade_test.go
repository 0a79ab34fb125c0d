package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/domain/model"
	testhelpers "github.com/ventry/ventry/internal/test"
	"github.com/ventry/ventry/internal/usecase"
)

func newTestFacade(t *testing.T) (*MarketplaceFacade, *testhelpers.PurchaseRepositoryStub, *testhelpers.CarRepositoryStub) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	managers := testhelpers.NewManagerRepositoryStub()
	customers := testhelpers.NewCustomerRepositoryStub()
	if _, err := customers.Create(context.Background(), &model.Customer{ID: "cust-1", Email: "jane@example.com", PasswordHash: "hash:password1", IsVerified: true}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	cars := &testhelpers.CarRepositoryStub{
		Cars: []model.Car{{ID: "car-1", Brand: "Toyota", Model: "Corolla", Price: 25000, IsAvailable: true, CategoryID: "cat-1"}},
	}
	categories := &testhelpers.CategoryRepositoryStub{Categories: []model.Category{{ID: "cat-1", Name: "Sedan"}}}
	purchases := testhelpers.NewPurchaseRepositoryStub()
	purchases.Cars = cars
	otps := testhelpers.NewOTPRepositoryStub()
	gateway := &testhelpers.GatewayStub{
		VerifyFn: func(_ context.Context, reference string) (*paystack.Verification, error) {
			return &paystack.Verification{Status: paystack.StatusSuccess, Reference: reference, Amount: 2500000}, nil
		},
	}
	mail := &testhelpers.MailerStub{}
	publisher := &testhelpers.PublisherStub{}
	hasher := testhelpers.HasherStub{}
	strategy := testhelpers.StrategyStub{}

	facade := NewMarketplaceFacade(
		usecase.NewAuthUseCase(managers, customers, hasher, strategy),
		usecase.NewCustomerUseCase(customers, otps, hasher, mail, 10*time.Minute, logger),
		usecase.NewManagerUseCase(managers, hasher),
		usecase.NewCarUseCase(cars, categories),
		usecase.NewCategoryUseCase(categories),
		usecase.NewPurchaseUseCase(purchases, cars, customers, gateway, mail, publisher, "https://ventry.dev/callback", "secret", logger),
	)
	return facade, purchases, cars
}

func TestMarketplaceFacadeAuth(t *testing.T) {
	facade, _, _ := newTestFacade(t)

	account, token, err := facade.Authenticate(context.Background(), "jane@example.com", "password1")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if account.Role != model.RoleCustomer || token == "" {
		t.Fatalf("unexpected account %+v token %q", account, token)
	}

	if _, err := facade.ParseToken("token"); err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
}

func TestMarketplaceFacadePurchaseLifecycle(t *testing.T) {
	facade, purchases, cars := newTestFacade(t)
	ctx := context.Background()

	purchase, auth, err := facade.InitiatePurchase(ctx, "cust-1", "car-1", "jane@example.com")
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if auth.AuthorizationURL == "" {
		t.Fatalf("checkout handle missing")
	}

	settled, err := facade.ConfirmPurchase(ctx, purchase.Reference)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if settled.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", settled.Status)
	}
	if cars.Cars[0].IsAvailable {
		t.Fatalf("car must be flipped unavailable")
	}
	if purchases.Completions != 1 {
		t.Fatalf("expected one completion, got %d", purchases.Completions)
	}

	got, err := facade.Purchase(ctx, purchase.Reference)
	if err != nil {
		t.Fatalf("get purchase returned error: %v", err)
	}
	if got.Reference != purchase.Reference {
		t.Fatalf("unexpected purchase %+v", got)
	}

	stale, err := facade.StalePurchases(ctx, 0, 10)
	if err != nil {
		t.Fatalf("stale purchases returned error: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("settled purchase must not be stale, got %d", len(stale))
	}
}

func TestMarketplaceFacadeInventory(t *testing.T) {
	facade, _, _ := newTestFacade(t)
	ctx := context.Background()

	car, err := facade.CreateCar(ctx, usecase.CarInput{
		Brand: "Honda", Model: "Civic", Price: 18000, CategoryID: "cat-1",
		Year: 2020, FuelType: model.FuelPetrol, Transmission: model.TransmissionManual,
	})
	if err != nil {
		t.Fatalf("create car returned error: %v", err)
	}

	cars, total, err := facade.Cars(ctx, model.CarFilter{})
	if err != nil || total != 2 {
		t.Fatalf("expected two listings, got %d (%v)", total, err)
	}
	_ = cars

	if err := facade.DeleteCar(ctx, car.ID); err != nil {
		t.Fatalf("delete car returned error: %v", err)
	}

	category, err := facade.CreateCategory(ctx, "SUV", "sport utility")
	if err != nil {
		t.Fatalf("create category returned error: %v", err)
	}
	if _, err := facade.Category(ctx, category.ID); err != nil {
		t.Fatalf("get category returned error: %v", err)
	}
}
