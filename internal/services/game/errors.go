package game

import "errors"

// Define errors
var (
	ErrNilConfig   = errors.New("config cannot be nil")
	ErrNilContract = errors.New("contract cannot be nil")
	ErrNoAccount   = errors.New("account cannot be empty")

	// ErrOperationInFlight is returned when a mutating call is attempted
	// while another transaction for this account has not settled yet
	ErrOperationInFlight = errors.New("another transaction is already in flight")

	// ErrUserRejected marks a transaction the user declined to sign. It
	// is reported with its own message and never counts as a failure of
	// the game itself.
	ErrUserRejected = errors.New("transaction rejected by user")
)
