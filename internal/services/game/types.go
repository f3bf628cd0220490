package game

import (
	"math/big"

	"go.uber.org/zap"
)

// Snapshot is the result of a getGameState read
type Snapshot struct {
	// InProgress indicates whether the account has an active game
	InProgress bool

	// Position is the current square, 0-100
	Position uint64

	// PrizePool is the prize pool in wei
	PrizePool *big.Int
}

// Config holds configuration for the game adapter
type Config struct {
	// Contract is the on-chain game
	Contract Contract

	// Account is the wallet address the adapter plays for
	Account string

	// Stake is the amount in wei submitted with startGame. Defaults to
	// the contract's fixed 0.01 ETH bet.
	Stake *big.Int

	// Optional logger
	Logger *zap.Logger
}
