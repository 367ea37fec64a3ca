package domain

import "time"

// Action holds a deposit record. Creating an Action is the only way money
// enters the system; the row is immutable after creation.
type Action struct {
	ID        int64     `json:"id"`
	AccountID int32     `json:"account"`
	Amount    string    `json:"amount"` // always positive, RUB
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"date"`
}

// DepositTxResult is the result of the deposit transaction.
type DepositTxResult struct {
	Action  Action  `json:"action"`
	Account Account `json:"account"`
}
