package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the user already owns an account.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account belongs to another user")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrInsufficientBalance indicates that the account balance cannot cover the operation.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount indicates a malformed money amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative money amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrAmountPrecision indicates a money amount with more than two decimal places.
	ErrAmountPrecision = errors.New("amount must have at most two decimal places")
)

// Account holds the user balance. The stored balance is always denominated
// in RUB; Currency tags the currency Balance is displayed in.
type Account struct {
	ID        int32     `json:"id"`
	Owner     string    `json:"owner"`
	Balance   string    `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
