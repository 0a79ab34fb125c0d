package di

import (
	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/mailer"
	"github.com/ventry/ventry/internal/adapter/paystack"
	"github.com/ventry/ventry/internal/app"
	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/logger"
	"github.com/ventry/ventry/internal/observability"
	"github.com/ventry/ventry/internal/pkg/auth"
	"github.com/ventry/ventry/internal/server/http/router"
	"github.com/ventry/ventry/internal/storage/postgres"
	"github.com/ventry/ventry/internal/storage/redisotp"
	"github.com/ventry/ventry/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redisotp.Module,
		paystack.Module,
		mailer.Module,
		events.Module,
		fx.Decorate(observability.InstrumentPublisher),
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
