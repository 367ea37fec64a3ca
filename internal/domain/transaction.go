package domain

import (
	"errors"
	"time"
)

// ErrAlreadyPurchased indicates that the account has already purchased the service.
var ErrAlreadyPurchased = errors.New("service already purchased")

// Transaction holds a purchase record. Amount is the RUB value actually
// charged at purchase time; the row is immutable after creation.
type Transaction struct {
	ID        int64     `json:"id"`
	AccountID int32     `json:"account"`
	ServiceID int32     `json:"service"`
	Amount    string    `json:"amount"` // RUB at time of charge
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"date"`
}

// PurchaseTxResult is the result of the purchase transaction.
type PurchaseTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
	Service     Service     `json:"service"`
}
