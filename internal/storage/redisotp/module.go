package redisotp

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/domain/repository"
)

// Module wires the Redis-backed OTP store.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(func(s *Store) repository.OTPRepository { return s }),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) *Store {
	return New(p.Config.RedisAddr, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
