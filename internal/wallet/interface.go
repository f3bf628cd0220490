package wallet

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_provider.go github.com/hexhaus/chainladders/internal/wallet Provider

// Provider is the wallet the manager drives. It mirrors the EIP-1193
// provider surface: interactive account requests, chain selection, and
// change notifications. Calls may suspend for as long as the provider
// needs; rejections are reported as errors, never panics.
type Provider interface {
	// RequestAccounts asks the provider for account access, prompting
	// the user if needed
	RequestAccounts(ctx context.Context) ([]string, error)

	// Accounts returns the already-authorized accounts without prompting
	Accounts(ctx context.Context) ([]string, error)

	// ChainID returns the provider's current chain id as a 0x-prefixed
	// hex string
	ChainID(ctx context.Context) (string, error)

	// SwitchChain selects the given chain. Returns ErrUnknownChain when
	// the provider has no definition for it.
	SwitchChain(ctx context.Context, chainID string) error

	// AddChain registers a chain definition with the provider and
	// selects it
	AddChain(ctx context.Context, params ChainParams) error

	// AccountsChanged delivers the new account list whenever it changes.
	// An empty list means the provider disconnected.
	AccountsChanged() <-chan []string

	// ChainChanged delivers the new chain id whenever it changes
	ChainChanged() <-chan string
}
