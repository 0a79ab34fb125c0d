package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
)

const managerColumns = `id, email, password_hash, first_name, last_name, role, created_at, updated_at`

func scanManager(row pgx.Row) (*model.Manager, error) {
	var m model.Manager
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.FirstName, &m.LastName,
		&m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *managerRepository) Create(ctx context.Context, manager *model.Manager) (*model.Manager, error) {
	const query = `INSERT INTO managers (id, email, password_hash, first_name, last_name, role)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		manager.ID, manager.Email, manager.PasswordHash,
		manager.FirstName, manager.LastName, manager.Role,
	).Scan(&manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return manager, nil
}

func (r *managerRepository) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE email=$1`
	manager, err := scanManager(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return manager, nil
}

func (r *managerRepository) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE id=$1`
	manager, err := scanManager(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return manager, nil
}

func (r *managerRepository) List(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM managers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	query := `SELECT ` + managerColumns + ` FROM managers ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.storage.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Manager
	for rows.Next() {
		manager, err := scanManager(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *manager)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *managerRepository) DeleteByEmail(ctx context.Context, email string) error {
	const query = `DELETE FROM managers WHERE email=$1`
	tag, err := r.storage.pool.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
