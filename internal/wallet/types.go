package wallet

import "go.uber.org/zap"

// SepoliaChainID is the required network, as the provider reports it
const SepoliaChainID = "0xaa36a7"

// ChainParams describes a chain definition the provider can register
type ChainParams struct {
	ChainID          string
	Name             string
	RPCURL           string
	ExplorerURL      string
	CurrencyName     string
	CurrencySymbol   string
	CurrencyDecimals int
}

// SepoliaChain is the definition offered to providers that do not know
// the required network yet
var SepoliaChain = ChainParams{
	ChainID:          SepoliaChainID,
	Name:             "Sepolia Testnet",
	RPCURL:           "https://sepolia.infura.io/v3/",
	ExplorerURL:      "https://sepolia.etherscan.io/",
	CurrencyName:     "SepoliaETH",
	CurrencySymbol:   "ETH",
	CurrencyDecimals: 18,
}

// Config holds configuration for the wallet session manager
type Config struct {
	// Provider is the wallet to drive. May be nil; Connect then fails
	// with ErrNoProvider.
	Provider Provider

	// RequiredChainID is the only chain the game accepts. Defaults to
	// Sepolia.
	RequiredChainID string

	// Chain is the definition used when the provider must add the
	// required chain. Defaults to the Sepolia definition.
	Chain ChainParams

	// Optional logger
	Logger *zap.Logger
}
