package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	testhelpers "github.com/ventry/ventry/internal/test"
)

func TestNewPurchaseReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewPurchaseReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, time.Minute, 0, 0, logger)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestPurchaseReconcilerConfirmsStalePurchases(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Purchase{{{Reference: "ventry_stale", Status: model.PaymentStatusPending}}},
	}
	rec := NewPurchaseReconciler(facade, 10*time.Millisecond, time.Minute, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		confirmed := len(facade.Confirmed) > 0
		facade.Unlock()
		if confirmed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Confirmed[0].Reference != "ventry_stale" {
		t.Fatalf("unexpected reference %q", facade.Confirmed[0].Reference)
	}
}

func TestPurchaseReconcilerToleratesGatewayOutage(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Purchase{
			{{Reference: "ventry_stale", Status: model.PaymentStatusPending}},
			{{Reference: "ventry_stale", Status: model.PaymentStatusPending}},
		},
		ConfirmFn: func(ctx context.Context, reference string) (*model.Purchase, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, domainErrors.ErrVerifyUnavailable
			}
			return &model.Purchase{Reference: reference, Status: model.PaymentStatusCompleted}, nil
		},
	}

	rec := NewPurchaseReconciler(facade, 5*time.Millisecond, time.Minute, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&attempts) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry after outage")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()
}

func TestPurchaseReconcilerStopBeforeStart(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewPurchaseReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, time.Minute, 1, 1, logger)
	rec.Stop()
}

func TestPurchaseReconcilerStaleFetchError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	calls := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		StaleFn: func(context.Context, time.Duration, int) ([]model.Purchase, error) {
			atomic.AddInt32(&calls, 1)
			return nil, context.DeadlineExceeded
		},
	}
	rec := NewPurchaseReconciler(facade, 5*time.Millisecond, time.Minute, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(5 * time.Millisecond):
		}
	}
	rec.Stop()
}
