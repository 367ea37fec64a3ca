package domain

import (
	"errors"
	"time"
)

var (
	// ErrServiceNotFound indicates that the service is not found.
	ErrServiceNotFound = errors.New("service not found")
	// ErrServicePriceTooLow indicates a service price below one.
	ErrServicePriceTooLow = errors.New("service cannot cost less than 1")
)

// Service holds a purchasable catalog entry. Price is denominated in the
// service's own Currency and converted to RUB at purchase time.
type Service struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateServiceParams is the input data to create a catalog entry.
type CreateServiceParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}

// UpdateServiceParams is the full set of mutable catalog fields.
// The service layer overlays partial updates onto the current values.
type UpdateServiceParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}
