// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	List(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// InDisplayCurrency returns a copy of the account with the balance shown in
// the given display currency. The stored balance is never changed.
func InDisplayCurrency(account domain.Account, currency string) (domain.Account, error) {
	if currency == "" || currency == currencypkg.RUB {
		return account, nil
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return account, errorspkg.ErrInternal
	}

	converted, err := currencypkg.FromRUB(balance, currency)
	if err != nil {
		return account, err
	}

	account.Balance = converted.StringFixed(2)
	account.Currency = currency

	return account, nil
}

// Create returns the owner's account, creating it on first call. The
// second return value reports whether a new account was created; repeated
// calls return the existing account unchanged.
func (s *Service) Create(ctx context.Context, owner string) (domain.Account, bool, error) {
	existing, err := s.repo.GetByOwner(ctx, owner)
	if err == nil {
		return existing, false, nil
	}

	if err != domain.ErrAccountNotFound {
		return domain.Account{}, false, err
	}

	account, err := s.repo.Create(ctx, owner, "0")
	if err == domain.ErrAccountAlreadyExists {
		// Lost a creation race; hand back the winner.
		existing, err := s.repo.GetByOwner(ctx, owner)
		return existing, false, err
	}

	if err != nil {
		return domain.Account{}, false, err
	}

	return account, true, nil
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByOwner returns the single account owned by the given user.
func (s *Service) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	return s.repo.GetByOwner(ctx, owner)
}

// List returns accounts owned by the given user with balances shown in the
// given display currency.
func (s *Service) List(ctx context.Context, owner, currency string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, owner, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		accounts[i], err = InDisplayCurrency(accounts[i], currency)
		if err != nil {
			return nil, err
		}
	}

	return accounts, nil
}
