package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/app"
	"github.com/ventry/ventry/internal/server/http/handlers"
	"github.com/ventry/ventry/internal/storage/postgres"
	"github.com/ventry/ventry/internal/storage/redisotp"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type routerParams struct {
	fx.In

	Facade  *app.MarketplaceFacade
	Storage *postgres.Storage
	OTPs    *redisotp.Store
	Logger  *slog.Logger
}

func newEngine(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, p.Storage, p.OTPs)
}

var _ handlers.MarketplaceFacade = (*app.MarketplaceFacade)(nil)
