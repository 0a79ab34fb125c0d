package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
)

var categorySortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	const query = `INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, category.ID, category.Name, category.Description).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM categories WHERE id=$1`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Name != "" {
		args = append(args, filter.Name)
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	order := orderClause(filter.Sort, categorySortColumns, "name ASC")

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at
                          FROM categories WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	if update.Name != nil {
		args = append(args, *update.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d
                          RETURNING id, name, description, created_at, updated_at`,
		strings.Join(sets, ", "), len(args))

	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
