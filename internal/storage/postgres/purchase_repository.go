package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
)

const purchaseColumns = `reference, customer_id, car_id, amount, payment_status, created_at, updated_at`

func scanPurchase(row pgx.Row) (*model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.Reference, &p.CustomerID, &p.CarID, &p.Amount, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	const query = `INSERT INTO purchases (reference, customer_id, car_id, amount, payment_status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		purchase.Reference, purchase.CustomerID, purchase.CarID, purchase.Amount, purchase.Status,
	).Scan(&purchase.CreatedAt, &purchase.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepository) GetByReference(ctx context.Context, reference string) (*model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE reference=$1`
	purchase, err := scanPurchase(r.storage.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}

// Complete performs the conditional pending->completed transition and flips
// the car to unavailable in the same transaction. Whichever confirmation
// path commits first wins; the loser observes zero affected rows and gets
// the already-recorded state back.
func (r *purchaseRepository) Complete(ctx context.Context, reference string) (*model.Purchase, bool, error) {
	var (
		purchase     *model.Purchase
		transitioned bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const transition = `UPDATE purchases
                            SET payment_status=$1, updated_at=NOW()
                            WHERE reference=$2 AND payment_status=$3
                            RETURNING ` + purchaseColumns
		p, err := scanPurchase(tx.QueryRow(ctx, transition,
			model.PaymentStatusCompleted, reference, model.PaymentStatusPending))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				current, err := scanPurchase(tx.QueryRow(ctx,
					`SELECT `+purchaseColumns+` FROM purchases WHERE reference=$1`, reference))
				if err != nil {
					if errors.Is(err, pgx.ErrNoRows) {
						return domainErrors.ErrNotFound
					}
					return err
				}
				purchase = current
				return nil
			}
			return err
		}

		const flipCar = `UPDATE cars SET is_available=FALSE, updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, flipCar, p.CarID); err != nil {
			return err
		}

		purchase = p
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return purchase, transitioned, nil
}

// Fail performs the conditional pending->failed transition. The car is left
// untouched since it was never taken off the market.
func (r *purchaseRepository) Fail(ctx context.Context, reference string) (*model.Purchase, bool, error) {
	const transition = `UPDATE purchases
                        SET payment_status=$1, updated_at=NOW()
                        WHERE reference=$2 AND payment_status=$3
                        RETURNING ` + purchaseColumns
	purchase, err := scanPurchase(r.storage.pool.QueryRow(ctx, transition,
		model.PaymentStatusFailed, reference, model.PaymentStatusPending))
	if err == nil {
		return purchase, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	current, err := r.GetByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *purchaseRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases
              WHERE payment_status=$1 AND created_at < $2
              ORDER BY created_at
              LIMIT $3`
	cutoff := time.Now().Add(-olderThan)

	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
