// Package actionservice manages business logic layer of deposit actions.
package actionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
)

// Repo provides data access layer interface needed by action service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package actionservice
type Repo interface {
	Deposit(ctx context.Context, amount string, accountID int32) (domain.DepositTxResult, error)
	List(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Action, error)
}

// AccountGetter provides the account lookups needed by action service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package actionservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// Service facilitates action service layer logic.
type Service struct {
	repo     Repo
	accounts AccountGetter
}

// New returns action service struct to manage deposit bussines logic.
func New(ar Repo, accounts AccountGetter) *Service {
	return &Service{
		repo:     ar,
		accounts: accounts,
	}
}

func validAmount(amount string) error {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	if !amountDecimal.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	if amountDecimal.Exponent() < -2 {
		return domain.ErrAmountPrecision
	}

	return nil
}

// Deposit credits the given account owned by the user and records the action.
func (s *Service) Deposit(ctx context.Context, username string, accountID int32, amount string) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(amount); err != nil {
		l.Info().Err(err).Send()
		return domain.DepositTxResult{}, err
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.DepositTxResult{}, err
	}

	if account.Owner != username {
		l.Info().Err(domain.ErrAccountOwnerMismatch).Send()
		return domain.DepositTxResult{}, domain.ErrAccountOwnerMismatch
	}

	return s.repo.Deposit(ctx, amount, accountID)
}

// List returns the user's deposit actions ordered by date or amount.
func (s *Service) List(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Action, error) {
	account, err := s.accounts.GetByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, account.ID, orderBy, limit, offset)
}
