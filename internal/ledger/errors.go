package ledger

import "errors"

var (
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrAccountLocked        = errors.New("account locked")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDepositNotFound      = errors.New("deposit not found")
	ErrNotDisputed          = errors.New("deposit not disputed")

	// ErrInsufficientHeldFunds signals an internal inconsistency: the ledger
	// attempted to release or charge back more than it itself placed on
	// hold. It is unreachable in correct operation and is reported, never
	// silently ignored.
	ErrInsufficientHeldFunds = errors.New("insufficient held funds")
)
