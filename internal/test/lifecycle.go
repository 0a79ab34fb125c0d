package test

import (
	"context"

	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered by constructors so tests can
// drive OnStart and OnStop directly.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// StartAll invokes every recorded OnStart hook in registration order.
func (l *LifecycleRecorder) StartAll(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownerStub signals on Called when the application asks to shut down.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown records the request without blocking the caller.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
