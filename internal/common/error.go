// Package common defines shared constants and sentinel errors used across
// client and server layers of linkify. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Ledger program errors. Every one of them aborts the whole operation.
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrDeserialization      = errors.New("account data deserialization failure")
	ErrUnauthorized         = errors.New("signer is not authorized for this account")
	ErrIdentityMismatch     = errors.New("identity does not match stored account")
	ErrInvalidState         = errors.New("operation not valid in current account state")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidInput         = errors.New("invalid input")

	// Transaction submission errors.
	ErrInvalidSignature     = errors.New("invalid transaction signature")
	ErrTransactionExpired   = errors.New("transaction timestamp outside accepted window")
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrConflict             = errors.New("concurrent update conflict, retry")
	ErrFaucetDisabled       = errors.New("faucet disabled or amount above limit")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ledgerErrors lists the sentinels that travel over the wire by their text.
var ledgerErrors = []error{
	ErrAccountAlreadyExists,
	ErrAccountNotFound,
	ErrDeserialization,
	ErrUnauthorized,
	ErrIdentityMismatch,
	ErrInvalidState,
	ErrInsufficientFunds,
	ErrInvalidInput,
	ErrInvalidSignature,
	ErrTransactionExpired,
	ErrDuplicateTransaction,
	ErrConflict,
	ErrFaucetDisabled,
	ErrInvalidToken,
	ErrTokenExpired,
	ErrRefreshTokenExpired,
	ErrorNotFound,
	ErrorUnauthorized,
}

// ErrorFromMessage returns the sentinel whose text prefixes msg, or nil.
// Wrapped sentinels are rendered as "<sentinel>: <detail>", so a prefix
// match is enough to recover the kind on the other side of a transport.
func ErrorFromMessage(msg string) error {
	for _, e := range ledgerErrors {
		text := e.Error()
		if msg == text || (len(msg) > len(text) && msg[:len(text)] == text && msg[len(text)] == ':') {
			return e
		}
	}
	return nil
}
