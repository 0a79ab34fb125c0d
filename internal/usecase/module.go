package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/mailer"
	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewManagerUseCase,
	NewCategoryUseCase,
	NewCarUseCase,
	newCustomerUseCase,
	newPurchaseUseCase,
)

type customerParams struct {
	fx.In

	Customers repository.CustomerRepository
	OTPs      repository.OTPRepository
	Hasher    pkgAuth.PasswordHasher
	Mailer    mailer.Mailer
	Config    *config.Config
	Logger    *slog.Logger
}

func newCustomerUseCase(p customerParams) *CustomerUseCase {
	return NewCustomerUseCase(p.Customers, p.OTPs, p.Hasher, p.Mailer, p.Config.OTPTTL, p.Logger)
}

type purchaseParams struct {
	fx.In

	Purchases repository.PurchaseRepository
	Cars      repository.CarRepository
	Customers repository.CustomerRepository
	Gateway   paystack.Client
	Mailer    mailer.Mailer
	Events    events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newPurchaseUseCase(p purchaseParams) *PurchaseUseCase {
	return NewPurchaseUseCase(
		p.Purchases, p.Cars, p.Customers, p.Gateway, p.Mailer, p.Events,
		p.Config.AppBaseURL+"/api/purchases/callback",
		p.Config.WebhookSecret,
		p.Logger,
	)
}
