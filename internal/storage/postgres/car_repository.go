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

const carColumns = `id, brand, model, price, is_available, category_id, year, mileage,
                    fuel_type, transmission, color, photos, created_at, updated_at`

var carSortColumns = map[string]string{
	"price":      "price",
	"year":       "year",
	"mileage":    "mileage",
	"brand":      "brand",
	"model":      "model",
	"created_at": "created_at",
}

func scanCar(row pgx.Row) (*model.Car, error) {
	var c model.Car
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.Price, &c.IsAvailable, &c.CategoryID,
		&c.Year, &c.Mileage, &c.FuelType, &c.Transmission, &c.Color, &c.Photos,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	const query = `INSERT INTO cars (id, brand, model, price, is_available, category_id, year,
                                    mileage, fuel_type, transmission, color, photos)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		car.ID, car.Brand, car.Model, car.Price, car.IsAvailable, car.CategoryID,
		car.Year, car.Mileage, car.FuelType, car.Transmission, car.Color, car.Photos,
	).Scan(&car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*model.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id=$1`
	car, err := scanCar(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepository) List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Brand != "" {
		addCondition("brand ILIKE $%d", filter.Brand)
	}
	if filter.Model != "" {
		addCondition("model ILIKE $%d", filter.Model)
	}
	if filter.CategoryID != "" {
		addCondition("category_id = $%d", filter.CategoryID)
	}
	if filter.FuelType != "" {
		addCondition("fuel_type = $%d", filter.FuelType)
	}
	if filter.Transmission != "" {
		addCondition("transmission = $%d", filter.Transmission)
	}
	if filter.Color != "" {
		addCondition("color ILIKE $%d", filter.Color)
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}
	if filter.MinYear != nil {
		addCondition("year >= $%d", *filter.MinYear)
	}
	if filter.MaxYear != nil {
		addCondition("year <= $%d", *filter.MaxYear)
	}
	if filter.IsAvailable != nil {
		addCondition("is_available = $%d", *filter.IsAvailable)
	}
	if filter.Search != "" {
		addCondition("(brand ILIKE $%[1]d OR model ILIKE $%[1]d OR color ILIKE $%[1]d)",
			"%"+filter.Search+"%")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM cars WHERE ` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	order := orderClause(filter.Sort, carSortColumns, "created_at DESC")

	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`SELECT %s FROM cars WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		carColumns, where, order, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *car)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *carRepository) Update(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Brand != nil {
		addSet("brand", *update.Brand)
	}
	if update.Model != nil {
		addSet("model", *update.Model)
	}
	if update.Price != nil {
		addSet("price", *update.Price)
	}
	if update.IsAvailable != nil {
		addSet("is_available", *update.IsAvailable)
	}
	if update.CategoryID != nil {
		addSet("category_id", *update.CategoryID)
	}
	if update.Year != nil {
		addSet("year", *update.Year)
	}
	if update.Mileage != nil {
		addSet("mileage", *update.Mileage)
	}
	if update.FuelType != nil {
		addSet("fuel_type", *update.FuelType)
	}
	if update.Transmission != nil {
		addSet("transmission", *update.Transmission)
	}
	if update.Color != nil {
		addSet("color", *update.Color)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE cars SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), carColumns)

	car, err := scanCar(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM cars WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *carRepository) AddPhotos(ctx context.Context, id string, urls []string) (*model.Car, error) {
	query := `UPDATE cars SET photos = photos || $2, updated_at = NOW()
              WHERE id = $1 RETURNING ` + carColumns
	car, err := scanCar(r.storage.pool.QueryRow(ctx, query, id, urls))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepository) RemovePhoto(ctx context.Context, id string, url string) (*model.Car, error) {
	query := `UPDATE cars SET photos = array_remove(photos, $2), updated_at = NOW()
              WHERE id = $1 RETURNING ` + carColumns
	car, err := scanCar(r.storage.pool.QueryRow(ctx, query, id, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// orderClause maps a "field:direction" sort spec onto a whitelisted ORDER BY
// fragment, falling back to the default when the field is unknown.
func orderClause(sort string, allowed map[string]string, fallback string) string {
	field, direction, _ := strings.Cut(sort, ":")
	column, ok := allowed[field]
	if !ok {
		return fallback
	}
	if strings.EqualFold(direction, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
