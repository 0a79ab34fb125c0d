package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ventry/ventry/internal/config"
)

// Module exposes the purchase event publisher to the fx graph.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not configured, purchase events disabled")
		return NopPublisher{}
	}

	publisher := NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
