// Package catalogservice manages business logic layer of the service catalog.
package catalogservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
)

// Repo provides data access layer interface needed by catalog service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package catalogservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateServiceParams) (domain.Service, error)
	Get(ctx context.Context, id int32) (domain.Service, error)
	List(ctx context.Context, currency string, limit, offset int32) ([]domain.Service, error)
	Update(ctx context.Context, id int32, arg domain.UpdateServiceParams) (domain.Service, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates catalog service layer logic.
type Service struct {
	repo Repo
}

// New returns catalog service struct to manage catalog bussines logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

var minPrice = decimal.NewFromInt(1)

func validPrice(price string) error {
	priceDecimal, err := decimal.NewFromString(price)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	if priceDecimal.LessThan(minPrice) {
		return domain.ErrServicePriceTooLow
	}

	if priceDecimal.Exponent() < -2 {
		return domain.ErrAmountPrecision
	}

	return nil
}

// Create validates the price and creates the catalog entry.
func (s *Service) Create(ctx context.Context, arg domain.CreateServiceParams) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	if err := validPrice(arg.Price); err != nil {
		l.Info().Err(err).Send()
		return domain.Service{}, err
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the catalog entry with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Service, error) {
	return s.repo.Get(ctx, id)
}

// List returns the specified page of catalog entries, optionally filtered
// by currency.
func (s *Service) List(ctx context.Context, currency string, pageSize, pageID int32) ([]domain.Service, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, currency, limit, offset)
}

// Update overlays the given fields onto the catalog entry; empty fields
// keep their current values.
func (s *Service) Update(ctx context.Context, id int32, arg domain.UpdateServiceParams) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}

	if arg.Name == "" {
		arg.Name = current.Name
	}

	if arg.Description == "" {
		arg.Description = current.Description
	}

	if arg.Price == "" {
		arg.Price = current.Price
	}

	if arg.Currency == "" {
		arg.Currency = current.Currency
	}

	if err := validPrice(arg.Price); err != nil {
		l.Info().Err(err).Send()
		return domain.Service{}, err
	}

	return s.repo.Update(ctx, id, arg)
}

// Delete removes the catalog entry with the given id.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
