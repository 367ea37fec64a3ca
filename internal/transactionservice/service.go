// Package transactionservice manages business logic layer of purchases.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Purchase(ctx context.Context, accountID, serviceID int32, charged string) (domain.PurchaseTxResult, error)
	List(ctx context.Context, accountID int32, orderBy string, limit, offset int32) ([]domain.Transaction, error)
}

// AccountGetter provides the account lookup needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type AccountGetter interface {
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// CatalogGetter provides the catalog lookup needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type CatalogGetter interface {
	Get(ctx context.Context, id int32) (domain.Service, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo     Repo
	accounts AccountGetter
	catalog  CatalogGetter
}

// New returns transaction service struct to manage purchase bussines logic.
func New(tr Repo, accounts AccountGetter, catalog CatalogGetter) *Service {
	return &Service{
		repo:     tr,
		accounts: accounts,
		catalog:  catalog,
	}
}

// Purchase charges the user's account for the service and records the
// transaction. The charged amount is the service price converted to RUB at
// the static rate, rounded half to even to two decimal places.
func (s *Service) Purchase(ctx context.Context, username string, serviceID int32) (domain.PurchaseTxResult, error) {
	l := zerolog.Ctx(ctx)

	service, err := s.catalog.Get(ctx, serviceID)
	if err != nil {
		return domain.PurchaseTxResult{}, err
	}

	account, err := s.accounts.GetByOwner(ctx, username)
	if err != nil {
		return domain.PurchaseTxResult{}, err
	}

	price, err := decimal.NewFromString(service.Price)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.PurchaseTxResult{}, errorspkg.ErrInternal
	}

	charged, err := currencypkg.ToRUB(price, service.Currency)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.PurchaseTxResult{}, errorspkg.ErrInternal
	}

	result, err := s.repo.Purchase(ctx, account.ID, service.ID, charged.StringFixed(2))
	if err != nil {
		return domain.PurchaseTxResult{}, err
	}

	result.Service = service

	return result, nil
}

// List returns the user's purchase transactions ordered by date or amount.
func (s *Service) List(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transaction, error) {
	account, err := s.accounts.GetByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, account.ID, orderBy, limit, offset)
}
