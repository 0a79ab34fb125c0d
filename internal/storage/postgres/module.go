package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.CarRepository { return s.Cars() },
		func(s *Storage) repository.CategoryRepository { return s.Categories() },
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		func(s *Storage) repository.ManagerRepository { return s.Managers() },
		func(s *Storage) repository.PurchaseRepository { return s.Purchases() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
