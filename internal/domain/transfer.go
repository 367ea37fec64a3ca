package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrSameAccountTransfer indicates a transfer where sender and recipient coincide.
	ErrSameAccountTransfer = errors.New("sender and recipient accounts coincide")
)

// Transfer holds a peer-to-peer fund movement between two accounts.
type Transfer struct {
	ID            int64     `json:"id"`
	FromAccountID int32     `json:"from_account"`
	ToAccountID   int32     `json:"to_account"`
	Amount        string    `json:"amount"` // must be positive, RUB
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"date"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int32  `json:"from_account"`
	ToAccountID   int32  `json:"to_account"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Transfer    Transfer `json:"transfer"`
	FromAccount Account  `json:"from_account"`
	ToAccount   Account  `json:"to_account"`
}
