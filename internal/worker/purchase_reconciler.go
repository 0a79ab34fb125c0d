package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
)

// MarketplaceFacade exposes the subset of application functionality
// required by the reconciler.
type MarketplaceFacade interface {
	StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error)
	ConfirmPurchase(ctx context.Context, reference string) (*model.Purchase, error)
}

// PurchaseReconciler sweeps purchases stuck in pending and re-verifies them
// with the gateway concurrently. A purchase goes stale when neither the
// callback nor the webhook managed to settle it, typically because the
// gateway was unreachable at confirmation time.
type PurchaseReconciler struct {
	facade       MarketplaceFacade
	pollInterval time.Duration
	staleAfter   time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Purchase
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPurchaseReconciler constructs the reconciler worker pool.
func NewPurchaseReconciler(facade MarketplaceFacade, pollInterval, staleAfter time.Duration, batchSize, workers int, logger *slog.Logger) *PurchaseReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PurchaseReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		staleAfter:   staleAfter,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Purchase, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PurchaseReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PurchaseReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PurchaseReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PurchaseReconciler) fetchAndDispatch(ctx context.Context) {
	purchases, err := p.facade.StalePurchases(ctx, p.staleAfter, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale purchases failed", slog.String("error", err.Error()))
		return
	}
	for _, purchase := range purchases {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- purchase:
		}
	}
}

func (p *PurchaseReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case purchase, ok := <-p.jobs:
			if !ok {
				return
			}
			p.reconcile(ctx, purchase)
		}
	}
}

func (p *PurchaseReconciler) reconcile(ctx context.Context, purchase model.Purchase) {
	settled, err := p.facade.ConfirmPurchase(ctx, purchase.Reference)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrVerifyUnavailable):
			// Still can't reach the gateway; the next sweep picks it up.
			p.logger.Warn("gateway unavailable during reconciliation",
				slog.String("reference", purchase.Reference))
			return
		case errors.Is(err, domainErrors.ErrVerificationFailed):
			// Settled as failed, which is still a reconciled outcome.
		default:
			p.logger.Error("reconcile purchase failed",
				slog.String("reference", purchase.Reference),
				slog.String("error", err.Error()))
			return
		}
	}

	p.logger.Info("reconciled stale purchase",
		slog.String("reference", settled.Reference),
		slog.String("status", string(settled.Status)))
}
