package paystack

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/config"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PaystackBaseURL, p.Config.PaystackSecretKey, p.Config.GatewayTimeout, p.Logger)
}
