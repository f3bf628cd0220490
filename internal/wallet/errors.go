package wallet

import "errors"

// Define errors
var (
	// ErrNoProvider is returned by Connect when no wallet provider is
	// available. The session stays disconnected.
	ErrNoProvider = errors.New("no wallet provider available, please install one")

	// ErrUnknownChain is the provider's signal that it has no definition
	// for the requested chain (EIP-1193 error 4902)
	ErrUnknownChain = errors.New("chain not known to the provider")

	// ErrUserRejected marks a provider request the user declined
	// (EIP-1193 error 4001)
	ErrUserRejected = errors.New("request rejected by user")
)
