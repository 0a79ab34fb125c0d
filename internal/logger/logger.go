package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates the JSON slog.Logger used across the service. The level is
// taken from LOG_LEVEL (debug, info, warn, error); anything else means info.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv()})
	return slog.New(handler).With(slog.String("service", "ventry"))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
