// Package catalogrepo manages repository layer of the service catalog.
package catalogrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// RepoPGS facilitates catalog repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns catalog RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanService(row *sql.Row) (domain.Service, error) {
	var s domain.Service

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.Currency,
		&s.CreatedAt,
	)

	return s, err
}

const createQuery = `
INSERT INTO
    services (name, description, price, currency)
VALUES
    ($1, $2, $3, $4)
RETURNING id, name, description, price, currency, created_at
`

// Create creates the catalog entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateServiceParams) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanService(r.db.QueryRowContext(ctx, createQuery,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Currency,
	))

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "services_price_check" {
				return s, domain.ErrServicePriceTooLow
			}
		}

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

const getQuery = `
SELECT
	id, name, description, price, currency, created_at
FROM services
WHERE id = $1
`

// Get returns the catalog entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanService(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return s, domain.ErrServiceNotFound
		}

		l.Error().Err(err).Send()

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

const listQuery = `
SELECT
	id, name, description, price, currency, created_at
FROM services
WHERE $1 = '' OR currency = $1
ORDER BY name
LIMIT $2 OFFSET $3
`

// List returns the specified page of catalog entries, optionally filtered
// by currency.
func (r *RepoPGS) List(ctx context.Context, currency string, limit, offset int32) ([]domain.Service, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, currency, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Service{}

	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Currency, &s.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE services
SET name = $2, description = $3, price = $4, currency = $5
WHERE id = $1
RETURNING id, name, description, price, currency, created_at
`

// Update overwrites the catalog entry and returns the updated row.
func (r *RepoPGS) Update(ctx context.Context, id int32, arg domain.UpdateServiceParams) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanService(r.db.QueryRowContext(ctx, updateQuery,
		id,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Currency,
	))

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return s, domain.ErrServiceNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "services_price_check" {
				return s, domain.ErrServicePriceTooLow
			}
		}

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

const deleteQuery = `
DELETE FROM services
WHERE id = $1
`

// Delete removes the catalog entry with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrServiceNotFound
	}

	return nil
}
