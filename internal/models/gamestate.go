package models

// GameState is the client-local mirror of the on-chain game for one
// account. It is a cache refreshed by re-reading the contract and is
// never the source of truth.
type GameState struct {
	// GameInProgress indicates whether the contract has an active game
	GameInProgress bool `json:"gameInProgress"`

	// CurrentPosition is the player's square on the board, 0-100
	CurrentPosition int `json:"currentPosition"`

	// PrizePool is the current prize pool as a decimal ETH string
	PrizePool string `json:"prizePool"`

	// IsLoading indicates a transaction is in flight
	IsLoading bool `json:"isLoading"`

	// LastDiceRoll is the most recent dice value, 0 when none
	LastDiceRoll int `json:"lastDiceRoll,omitempty"`

	// Message is the human-readable status of the game
	Message string `json:"message"`
}

// WalletSession describes the connection to the wallet provider for one
// session. It is derived entirely from provider queries and never persisted.
type WalletSession struct {
	// Account is the selected wallet address, empty when disconnected
	Account string `json:"account,omitempty"`

	// IsConnected indicates whether a wallet account is available
	IsConnected bool `json:"isConnected"`

	// IsCorrectNetwork indicates whether the provider is on the required chain
	IsCorrectNetwork bool `json:"isCorrectNetwork"`
}
