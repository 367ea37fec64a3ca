// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	ListBySender(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transfer, error)
	ListByRecipient(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transfer, error)
}

// AccountGetter provides the account lookups needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo     Repo
	accounts AccountGetter
}

// New returns transfer service struct to manage transfer bussines logic.
func New(tr Repo, accounts AccountGetter) *Service {
	return &Service{
		repo:     tr,
		accounts: accounts,
	}
}

func (s *Service) validRequest(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if !amountDecimal.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	if amountDecimal.Exponent() < -2 {
		return domain.ErrAmountPrecision
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.ErrSameAccountTransfer
	}

	fromAccount, err := s.accounts.Get(ctx, arg.FromAccountID)
	if err != nil {
		return err
	}

	if fromAccount.Owner != fromUsername {
		l.Info().Err(domain.ErrAccountOwnerMismatch).Send()
		return domain.ErrAccountOwnerMismatch
	}

	if _, err := s.accounts.Get(ctx, arg.ToAccountID); err != nil {
		return err
	}

	return nil
}

// Transfer checks if the transfer request is valid and then executes it.
// The balance check itself runs inside the repository transaction against
// the locked sender row.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	if err := s.validRequest(ctx, fromUsername, arg); err != nil {
		return domain.TransferTxResult{}, err
	}

	return s.repo.Transfer(ctx, arg)
}

// List returns the user's outgoing transfers ordered by date or amount.
func (s *Service) List(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transfer, error) {
	account, err := s.accounts.GetByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.ListBySender(ctx, account.ID, orderBy, limit, offset)
}

// ListToMyAccount returns transfers received by the user's account
// ordered by date or amount.
func (s *Service) ListToMyAccount(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transfer, error) {
	account, err := s.accounts.GetByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.ListByRecipient(ctx, account.ID, orderBy, limit, offset)
}
