package config

import "go.uber.org/fx"

// Module loads environment configuration into fx graphs.
var Module = fx.Provide(Load)
