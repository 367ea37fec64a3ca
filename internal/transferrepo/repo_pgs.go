// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an ongoing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transfers (from_account_id, to_account_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, from_account_id, to_account_id, amount, created_at
`

// Create creates the transfer record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.FromAccountID, arg.ToAccountID, arg.Amount)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	t.Currency = currencypkg.RUB

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_from_account_id_fkey", "transfers_to_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return t, domain.ErrNonPositiveAmount
			case "transfers_accounts_check":
				return t, domain.ErrSameAccountTransfer
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Transfer moves money between two accounts.
//
// It locks both account rows in ascending id order to avoid deadlocks,
// checks the sender balance against the locked row, updates both balances
// and creates the transfer record within a single database transaction.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

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
	transferRepo := NewTxRepoPGS(tx)

	// Lock rows in consistent id order to avoid deadlocks.
	firstID, secondID := arg.FromAccountID, arg.ToAccountID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	if _, err = accountRepo.GetForUpdate(ctx, firstID); err != nil {
		return result, err
	}

	if _, err = accountRepo.GetForUpdate(ctx, secondID); err != nil {
		return result, err
	}

	fromAccount, err := accountRepo.Get(ctx, arg.FromAccountID)
	if err != nil {
		return result, err
	}

	fromBalance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if fromBalance.Sub(amount).IsNegative() {
		return result, domain.ErrInsufficientBalance
	}

	result.FromAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.FromAccountID)
	if err != nil {
		return result, err
	}

	result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	result.Transfer, err = transferRepo.Create(ctx, arg)
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

const listBySenderQuery = `
SELECT
	id, from_account_id, to_account_id, amount, created_at
FROM transfers
WHERE from_account_id = $1
ORDER BY `

// ListBySender returns the specified page of transfers sent from the given
// account, ordered by date or amount.
func (r *RepoPGS) ListBySender(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transfer, error) {
	return r.list(ctx, listBySenderQuery, accountID, orderBy, limit, offset)
}

const listByRecipientQuery = `
SELECT
	id, from_account_id, to_account_id, amount, created_at
FROM transfers
WHERE to_account_id = $1
ORDER BY `

// ListByRecipient returns the specified page of transfers received by the
// given account, ordered by date or amount.
func (r *RepoPGS) ListByRecipient(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transfer, error) {
	return r.list(ctx, listByRecipientQuery, accountID, orderBy, limit, offset)
}

func (r *RepoPGS) list(ctx context.Context, query string, accountID int32, orderBy string, limit, offset int32) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	column, ok := orderColumns[orderBy]
	if !ok {
		column = "created_at"
	}

	rows, err := r.db.QueryContext(ctx, query+column+" LIMIT $2 OFFSET $3", accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.Currency = currencypkg.RUB

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
