package test

import (
	"context"
	"sync"
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// ReconcileCall stores information about ConfirmPurchase invocations.
type ReconcileCall struct {
	Reference string
}

// WorkerFacadeStub mimics reconciler interactions with the marketplace facade.
type WorkerFacadeStub struct {
	Batches   [][]model.Purchase
	StaleFn   func(context.Context, time.Duration, int) ([]model.Purchase, error)
	ConfirmFn func(context.Context, string) (*model.Purchase, error)
	Confirmed []ReconcileCall

	mu             sync.Mutex
	staleCallCount int
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// StalePurchases returns batches from configured queue.
func (s *WorkerFacadeStub) StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	s.mu.Lock()
	call := s.staleCallCount
	s.staleCallCount++
	s.mu.Unlock()
	if call < len(s.Batches) {
		return s.Batches[call], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ConfirmPurchase records re-verification requests.
func (s *WorkerFacadeStub) ConfirmPurchase(ctx context.Context, reference string) (*model.Purchase, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, reference)
	}
	s.mu.Lock()
	s.Confirmed = append(s.Confirmed, ReconcileCall{Reference: reference})
	s.mu.Unlock()
	return &model.Purchase{Reference: reference, Status: model.PaymentStatusCompleted}, nil
}
