package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConfirmationCodeNotFound indicates that no code was issued for the email.
	ErrConfirmationCodeNotFound = errors.New("confirmation code not found")
	// ErrInvalidConfirmationCode indicates that the given code does not match the issued one.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	// ErrExpiredConfirmationCode indicates that the issued code has expired.
	ErrExpiredConfirmationCode = errors.New("expired confirmation code")
)

// ConfirmationCode holds an issued sign-in code. Only the bcrypt hash of the
// code is stored; the plain code leaves the system through the mailer.
type ConfirmationCode struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateConfirmationCodeParams holds data needed for ConfirmationCode creation.
type CreateConfirmationCodeParams struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}
