// Package actionrepo manages repository layer of deposit actions.
package actionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// RepoPGS facilitates action repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns action RepoPGS bound to an ongoing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns action RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    actions (account_id, amount)
VALUES
    ($1, $2)
RETURNING id, account_id, amount, created_at
`

// Create creates the action record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, amount string, accountID int32) (domain.Action, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, amount)

	var a domain.Action

	err := row.Scan(
		&a.ID,
		&a.AccountID,
		&a.Amount,
		&a.CreatedAt,
	)

	a.Currency = currencypkg.RUB

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "actions_account_id_fkey":
				return a, domain.ErrAccountNotFound
			case "actions_amount_check":
				return a, domain.ErrNonPositiveAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

// Deposit credits the account and records the action within a single
// database transaction so the balance never changes without its record.
func (r *RepoPGS) Deposit(ctx context.Context, amount string, accountID int32) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	actionRepo := NewTxRepoPGS(tx)

	if _, err = accountRepo.GetForUpdate(ctx, accountID); err != nil {
		return result, err
	}

	result.Account, err = accountRepo.AddBalance(ctx, amount, accountID)
	if err != nil {
		return result, err
	}

	result.Action, err = actionRepo.Create(ctx, amount, accountID)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

var orderColumns = map[string]string{
	"":       "created_at",
	"date":   "created_at",
	"amount": "amount",
}

const listQuery = `
SELECT
	id, account_id, amount, created_at
FROM actions
WHERE account_id = $1
ORDER BY `

// List returns the specified page of actions for the given account,
// ordered by date or amount.
func (r *RepoPGS) List(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Action, error) {
	l := zerolog.Ctx(ctx)

	column, ok := orderColumns[orderBy]
	if !ok {
		column = "created_at"
	}

	rows, err := r.db.QueryContext(ctx, listQuery+column+" LIMIT $2 OFFSET $3", accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Action{}

	for rows.Next() {
		var a domain.Action
		if err := rows.Scan(&a.ID, &a.AccountID, &a.Amount, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		a.Currency = currencypkg.RUB

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
