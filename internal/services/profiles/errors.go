package profiles

import "errors"

// Define errors
var (
	ErrNilConfig   = errors.New("config cannot be nil")
	ErrNilRegistry = errors.New("registry cannot be nil")
	ErrNilClock    = errors.New("clock cannot be nil")
	ErrNilUUID     = errors.New("UUID generator cannot be nil")
	ErrNoWallet    = errors.New("wallet address cannot be empty")
)
