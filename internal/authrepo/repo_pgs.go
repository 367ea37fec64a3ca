// Package authrepo manages repository layer of confirmation codes.
package authrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// RepoPGS facilitates confirmation code repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns auth RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO confirmation_codes (
	id,
	email,
	code_hash,
	expires_at
) VALUES (
	$1, $2, $3, $4
) RETURNING id, email, code_hash, expires_at, created_at
`

// Create stores the issued confirmation code hash and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateConfirmationCodeParams) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.Email,
		arg.CodeHash,
		arg.ExpiresAt,
	)

	var c domain.ConfirmationCode

	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.CodeHash,
		&c.ExpiresAt,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "confirmation_codes_email_fkey" {
				return c, domain.ErrUserNotFound
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getLatestQuery = `
SELECT
	id, email, code_hash, expires_at, created_at
FROM confirmation_codes
WHERE email = $1
ORDER BY created_at DESC
LIMIT 1
`

// GetLatest returns the most recently issued code for the given email.
func (r *RepoPGS) GetLatest(ctx context.Context, email string) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getLatestQuery, email)

	var c domain.ConfirmationCode

	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.CodeHash,
		&c.ExpiresAt,
		&c.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrConfirmationCodeNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const deleteByEmailQuery = `
DELETE FROM confirmation_codes
WHERE email = $1
`

// DeleteByEmail removes all codes issued for the given email. Called after
// a successful token exchange so a code cannot be replayed.
func (r *RepoPGS) DeleteByEmail(ctx context.Context, email string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteByEmailQuery, email); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
