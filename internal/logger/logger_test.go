package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}
}

func TestNewHonorsLogLevelEnv(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for value, level := range cases {
		t.Setenv("LOG_LEVEL", value)
		if !New().Enabled(context.Background(), level) {
			t.Errorf("LOG_LEVEL=%s: expected %s to be enabled", value, level)
		}
	}
}
