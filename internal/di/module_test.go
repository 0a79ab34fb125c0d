package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/mailer"
	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/app"
	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	"github.com/ventry/ventry/internal/storage/postgres"
	"github.com/ventry/ventry/internal/storage/redisotp"
	"github.com/ventry/ventry/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		RedisAddr:         "localhost:6379",
		PaystackSecretKey: "sk_test",
		PaystackBaseURL:   "http://localhost",
		WebhookSecret:     "sk_test",
		AppBaseURL:        "http://localhost",
		JWTSecret:         "secret",
		OTPTTL:            time.Minute,
		GatewayTimeout:    time.Second,
		ReconcileInterval: time.Millisecond,
		ReconcileAfter:    time.Minute,
		MaxReconcileBatch: 1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cars := &test.CarRepositoryStub{Cars: []model.Car{{ID: "car-1", IsAvailable: true}}}
	purchases := test.NewPurchaseRepositoryStub()

	var facade *app.MarketplaceFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&redisotp.Store{}),
			fx.Replace(repository.CarRepository(cars)),
			fx.Replace(repository.CategoryRepository(&test.CategoryRepositoryStub{})),
			fx.Replace(repository.CustomerRepository(test.NewCustomerRepositoryStub())),
			fx.Replace(repository.ManagerRepository(test.NewManagerRepositoryStub())),
			fx.Replace(repository.PurchaseRepository(purchases)),
			fx.Replace(repository.OTPRepository(test.NewOTPRepositoryStub())),
			fx.Replace(paystack.Client(&test.GatewayStub{})),
			fx.Replace(mailer.Mailer(&test.MailerStub{})),
			fx.Replace(events.Publisher(&test.PublisherStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected marketplace facade instance")
	}
}
