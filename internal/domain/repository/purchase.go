package repository

import (
	"context"
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// PurchaseRepository is the purchase ledger. Terminal transitions are
// conditional writes: they succeed only while the record is still pending,
// which makes the racing confirmation paths safe to run concurrently.
type PurchaseRepository interface {
	// Create persists a new pending purchase.
	Create(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error)
	GetByReference(ctx context.Context, reference string) (*model.Purchase, error)
	// Complete atomically moves pending->completed and marks the car
	// unavailable in the same transaction. The bool reports whether this
	// call performed the transition; when false the returned purchase
	// carries the previously recorded state.
	Complete(ctx context.Context, reference string) (*model.Purchase, bool, error)
	// Fail atomically moves pending->failed. Terminal records are left
	// untouched and reported with a false flag.
	Fail(ctx context.Context, reference string) (*model.Purchase, bool, error)
	// SelectStalePending returns pending purchases older than the cutoff,
	// oldest first, for background re-verification.
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error)
}
