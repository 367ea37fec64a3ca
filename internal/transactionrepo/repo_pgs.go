// Package transactionrepo manages repository layer of purchase transactions.
package transactionrepo

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

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an ongoing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, service_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, account_id, service_id, amount, created_at
`

// Create creates the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID, serviceID int32, amount string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, serviceID, amount)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.ServiceID,
		&t.Amount,
		&t.CreatedAt,
	)

	t.Currency = currencypkg.RUB

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_service_id_fkey":
				return t, domain.ErrServiceNotFound
			case "transactions_account_id_service_id_key":
				return t, domain.ErrAlreadyPurchased
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const existsQuery = `
SELECT EXISTS (
	SELECT 1 FROM transactions
	WHERE account_id = $1 AND service_id = $2
)
`

// Exists reports whether the account has already purchased the service.
func (r *RepoPGS) Exists(ctx context.Context, accountID, serviceID int32) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	err := r.db.QueryRowContext(ctx, existsQuery, accountID, serviceID).Scan(&exists)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

// Purchase debits the account by the charged amount and records the
// transaction within a single database transaction.
//
// The account row is locked first, so the duplicate-purchase check and the
// balance check are evaluated against a serialized view: two concurrent
// purchases of the same service cannot both pass.
func (r *RepoPGS) Purchase(ctx context.Context, accountID, serviceID int32, charged string) (domain.PurchaseTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.PurchaseTxResult

	chargedDecimal, err := decimal.NewFromString(charged)
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
	transactionRepo := NewTxRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, accountID)
	if err != nil {
		return result, err
	}

	alreadyPurchased, err := transactionRepo.Exists(ctx, accountID, serviceID)
	if err != nil {
		return result, err
	}

	if alreadyPurchased {
		return result, domain.ErrAlreadyPurchased
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if balance.Sub(chargedDecimal).IsNegative() {
		return result, domain.ErrInsufficientBalance
	}

	result.Account, err = accountRepo.AddBalance(ctx, "-"+charged, accountID)
	if err != nil {
		return result, err
	}

	result.Transaction, err = transactionRepo.Create(ctx, accountID, serviceID, charged)
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
	id, account_id, service_id, amount, created_at
FROM transactions
WHERE account_id = $1
ORDER BY `

// List returns the specified page of transactions for the given account,
// ordered by date or amount.
func (r *RepoPGS) List(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transaction, error) {
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

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.ServiceID, &t.Amount, &t.CreatedAt); err != nil {
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
