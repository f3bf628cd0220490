package game

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_contract.go github.com/hexhaus/chainladders/internal/services/game Contract

// Contract is the on-chain call surface the adapter depends on. Mutating
// calls block until the transaction settles and return the receipt logs.
type Contract interface {
	// GetGameState reads the game for one account without a transaction
	GetGameState(ctx context.Context, account string) (*Snapshot, error)

	// StartGame submits the stake-bearing transaction that opens a game
	StartGame(ctx context.Context, stake *big.Int) ([]*types.Log, error)

	// RollDice submits a roll transaction
	RollDice(ctx context.Context) ([]*types.Log, error)

	// ResetGame submits the transaction that clears position and progress
	ResetGame(ctx context.Context) ([]*types.Log, error)

	// BetAmount reads the fixed stake the contract requires
	BetAmount(ctx context.Context) (*big.Int, error)
}
