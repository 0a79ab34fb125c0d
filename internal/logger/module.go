package logger

import "go.uber.org/fx"

// Module provides the service-wide slog logger.
var Module = fx.Provide(New)
