package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ventry/ventry/internal/config"
	"github.com/ventry/ventry/internal/domain/model"
	testhelpers "github.com/ventry/ventry/internal/test"
	"github.com/ventry/ventry/internal/worker"
)

func newTestReconciler() *worker.PurchaseReconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewPurchaseReconciler(&testhelpers.WorkerFacadeStub{}, 10*time.Millisecond, time.Minute, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewPurchaseReconcilerUsesConfig(t *testing.T) {
	rec := newPurchaseReconciler(workerParams{
		Facade: &MarketplaceFacade{},
		Config: &config.Config{ReconcileInterval: 15 * time.Second, ReconcileAfter: 5 * time.Minute, MaxReconcileBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if rec == nil {
		t.Fatal("expected reconciler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	rec := newTestReconciler()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     rec,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.StartAll(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Hooks[0].OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

// The start hook's context only lives for the duration of boot; the
// reconciler must keep polling after it is cancelled.
func TestRegisterLifecycleWorkerOutlivesStartContext(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Purchase{{{Reference: "ventry_stale", Status: model.PaymentStatusPending}}},
	}
	rec := worker.NewPurchaseReconciler(facade, 10*time.Millisecond, time.Minute, 1, 1, logger)

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     rec,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	startCtx, cancel := context.WithCancel(context.Background())
	if err := recorder.StartAll(startCtx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	cancel()

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		confirmed := len(facade.Confirmed)
		facade.Unlock()
		if confirmed > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("reconciler stopped when the start context was cancelled")
		case <-time.After(5 * time.Millisecond):
		}
	}

	_ = recorder.Hooks[0].OnStop(context.Background())
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	rec := newTestReconciler()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     rec,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
