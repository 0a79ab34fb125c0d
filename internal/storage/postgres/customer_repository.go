package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
)

const customerColumns = `id, email, password_hash, first_name, last_name, is_verified, created_at, updated_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.IsVerified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO customers (id, email, password_hash, first_name, last_name, is_verified)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		customer.ID, customer.Email, customer.PasswordHash,
		customer.FirstName, customer.LastName, customer.IsVerified,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email=$1`
	customer, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	customer, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) MarkVerified(ctx context.Context, email string) (*model.Customer, error) {
	query := `UPDATE customers SET is_verified = TRUE, updated_at = NOW()
              WHERE email = $1 RETURNING ` + customerColumns
	customer, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}
