package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/services/game"
	"github.com/hexhaus/chainladders/internal/snakes"
)

// ConfirmFunc is consulted before every transaction. Returning
// game.ErrUserRejected vetoes the submission the way a wallet's reject
// button would.
type ConfirmFunc func(ctx context.Context, method string, value *big.Int) error

// GameConfig holds configuration for the bound contract
type GameConfig struct {
	// Client is the RPC connection to a Sepolia node
	Client *ethclient.Client

	// Address is the deployed SnakesAndLadders contract
	Address common.Address

	// PrivateKey signs transactions
	PrivateKey *ecdsa.PrivateKey

	// ChainID is the numeric chain id used by the signer
	ChainID *big.Int

	// Confirm, when set, is asked before each transaction
	Confirm ConfirmFunc

	// Optional logger
	Logger *zap.Logger
}

// BoundGame implements game.Contract against the deployed contract.
// Mutating calls wait for the transaction to be mined and hand the
// receipt logs back to the adapter for decoding.
type BoundGame struct {
	contract *bind.BoundContract
	client   *ethclient.Client
	key      *ecdsa.PrivateKey
	chainID  *big.Int
	confirm  ConfirmFunc
	logger   *zap.Logger
}

// NewBoundGame creates the contract binding
func NewBoundGame(cfg *GameConfig) (*BoundGame, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Client == nil {
		return nil, errors.New("client cannot be nil")
	}

	if cfg.PrivateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}

	if cfg.ChainID == nil {
		return nil, errors.New("chain id cannot be nil")
	}

	parsed, err := snakes.ABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BoundGame{
		contract: bind.NewBoundContract(cfg.Address, parsed, cfg.Client, cfg.Client, cfg.Client),
		client:   cfg.Client,
		key:      cfg.PrivateKey,
		chainID:  cfg.ChainID,
		confirm:  cfg.Confirm,
		logger:   logger,
	}, nil
}

// GetGameState reads the game for one account
func (g *BoundGame) GetGameState(ctx context.Context, account string) (*game.Snapshot, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getGameState", common.HexToAddress(account))
	if err != nil {
		return nil, fmt.Errorf("getGameState call failed: %w", err)
	}

	if len(out) != 3 {
		return nil, fmt.Errorf("getGameState returned %d values, expected 3", len(out))
	}

	inProgress, ok := out[0].(bool)
	position, ok2 := out[1].(*big.Int)
	pool, ok3 := out[2].(*big.Int)
	if !ok || !ok2 || !ok3 {
		return nil, errors.New("getGameState returned unexpected types")
	}

	return &game.Snapshot{
		InProgress: inProgress,
		Position:   position.Uint64(),
		PrizePool:  pool,
	}, nil
}

// StartGame submits the stake-bearing transaction that opens a game
func (g *BoundGame) StartGame(ctx context.Context, stake *big.Int) ([]*types.Log, error) {
	return g.transact(ctx, "startGame", stake)
}

// RollDice submits a roll transaction
func (g *BoundGame) RollDice(ctx context.Context) ([]*types.Log, error) {
	return g.transact(ctx, "rollDice", nil)
}

// ResetGame submits the transaction that clears position and progress
func (g *BoundGame) ResetGame(ctx context.Context) ([]*types.Log, error) {
	return g.transact(ctx, "resetGame", nil)
}

// BetAmount reads the fixed stake the contract requires
func (g *BoundGame) BetAmount(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "BET_AMOUNT")
	if err != nil {
		return nil, fmt.Errorf("BET_AMOUNT call failed: %w", err)
	}

	if len(out) != 1 {
		return nil, fmt.Errorf("BET_AMOUNT returned %d values, expected 1", len(out))
	}

	amount, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.New("BET_AMOUNT returned an unexpected type")
	}

	return amount, nil
}

func (g *BoundGame) transact(ctx context.Context, method string, value *big.Int) ([]*types.Log, error) {
	if g.confirm != nil {
		if err := g.confirm(ctx, method, value); err != nil {
			return nil, err
		}
	}

	opts, err := bind.NewKeyedTransactorWithChainID(g.key, g.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := g.contract.Transact(opts, method)
	if err != nil {
		return nil, fmt.Errorf("%s transaction failed: %w", method, err)
	}

	g.logger.Info("transaction submitted",
		zap.String("method", method),
		zap.String("tx", tx.Hash().Hex()))

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s confirmation failed: %w", method, err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}

	return receipt.Logs, nil
}
