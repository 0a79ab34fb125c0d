package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/config"
)

// Module exposes the mail client to the fx graph.
var Module = fx.Provide(newMailer)

type mailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailer(p mailerParams) (Mailer, error) {
	if p.Config.MailAPIKey == "" {
		return NewNopMailer(p.Logger), nil
	}
	return NewHTTPMailer(p.Config.MailBaseURL, p.Config.MailAPIKey, p.Config.MailFromEmail, p.Logger)
}
