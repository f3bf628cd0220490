package game

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/snakes"
)

// Status messages shown to the player. The view layer renders these
// verbatim.
const (
	msgWelcome        = "Welcome to Crypto Snakes & Ladders!"
	msgStarting       = "Starting game..."
	msgRolling        = "Rolling dice..."
	msgResetting      = "Resetting game..."
	msgStartedRoll    = "Game started! Roll the dice to begin!"
	msgResetDone      = "Game reset. Ready to start a new game!"
	msgCancelled      = "Transaction cancelled by user"
	msgRefreshError   = "Error loading game state. Please try again."
	msgStartError     = "Error starting game. Please try again."
	msgRollError      = "Error rolling dice. Please try again."
	msgResetError     = "Error resetting game. Please try again."
	msgInProgressZero = "Game started! Roll the dice!"
	msgWon            = "Congratulations! You won!"
	msgReady          = "Ready to start a new game!"
	msgRollWon        = "Congratulations! You won the game!"
)

// defaultStakeWei is the contract's fixed bet of 0.01 ETH
var defaultStakeWei = big.NewInt(10_000_000_000_000_000)

// Subscriber receives the game state after every change
type Subscriber func(state models.GameState)

// Adapter translates between the contract's call surface and the local
// GameState cache. Mutating operations are serialized per account through
// the loading gate: a second submission while one is in flight fails with
// ErrOperationInFlight.
type Adapter struct {
	contract Contract
	account  string
	stake    *big.Int
	logger   *zap.Logger

	mu        sync.Mutex
	state     models.GameState
	subs      map[int]Subscriber
	nextSubID int
}

// New creates a new game adapter
func New(cfg *Config) (*Adapter, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Contract == nil {
		return nil, ErrNilContract
	}

	if cfg.Account == "" {
		return nil, ErrNoAccount
	}

	stake := cfg.Stake
	if stake == nil {
		stake = defaultStakeWei
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		contract: cfg.Contract,
		account:  cfg.Account,
		stake:    stake,
		logger:   logger,
		state: models.GameState{
			PrizePool: "0",
			Message:   msgWelcome,
		},
		subs: make(map[int]Subscriber),
	}, nil
}

// State returns a snapshot of the current game state
func (a *Adapter) State() models.GameState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Subscribe registers a callback invoked after every state change. The
// returned function removes the subscription.
func (a *Adapter) Subscribe(fn Subscriber) func() {
	a.mu.Lock()
	id := a.nextSubID
	a.nextSubID++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

// Refresh re-reads the game from the contract. It is idempotent and does
// not touch the loading gate.
func (a *Adapter) Refresh(ctx context.Context) (models.GameState, error) {
	return a.refresh(ctx)
}

// Start submits the stake-bearing transaction that opens a new game
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.begin(msgStarting); err != nil {
		return err
	}

	_, err := a.contract.StartGame(ctx, a.stake)
	if err != nil {
		a.logger.Warn("start game failed", zap.Error(err))
		a.finish(failureMessage(err, msgStartError), nil)
		return err
	}

	if _, err := a.refresh(ctx); err != nil {
		a.finish("", nil)
		return err
	}

	a.finish(msgStartedRoll, nil)
	return nil
}

// RollDice submits a roll transaction and decodes the emitted events
func (a *Adapter) RollDice(ctx context.Context) ([]snakes.Event, error) {
	if err := a.begin(msgRolling); err != nil {
		return nil, err
	}

	logs, err := a.contract.RollDice(ctx)
	if err != nil {
		a.logger.Warn("roll dice failed", zap.Error(err))
		a.finish(failureMessage(err, msgRollError), nil)
		return nil, err
	}

	events := snakes.DecodeLogs(logs)
	roll, message := summarizeRoll(events)

	if _, err := a.refresh(ctx); err != nil {
		a.logger.Warn("refresh after roll failed", zap.Error(err))
	}

	a.finish(message, func(st *models.GameState) {
		if roll > 0 {
			st.LastDiceRoll = roll
		}
	})
	return events, nil
}

// Reset submits the transaction that clears position and progress
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.begin(msgResetting); err != nil {
		return err
	}

	_, err := a.contract.ResetGame(ctx)
	if err != nil {
		a.logger.Warn("reset game failed", zap.Error(err))
		a.finish(failureMessage(err, msgResetError), nil)
		return err
	}

	if _, err := a.refresh(ctx); err != nil {
		a.logger.Warn("refresh after reset failed", zap.Error(err))
	}

	a.finish(msgResetDone, func(st *models.GameState) {
		st.LastDiceRoll = 0
	})
	return nil
}

// BetAmount reads the fixed stake the contract requires
func (a *Adapter) BetAmount(ctx context.Context) (*big.Int, error) {
	return a.contract.BetAmount(ctx)
}

// begin acquires the loading gate and publishes the in-progress message
func (a *Adapter) begin(message string) error {
	a.mu.Lock()
	if a.state.IsLoading {
		a.mu.Unlock()
		return ErrOperationInFlight
	}
	a.state.IsLoading = true
	a.state.Message = message
	subs, snap := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(subs, snap)
	return nil
}

// finish releases the loading gate on every exit path. An empty message
// leaves the current one in place.
func (a *Adapter) finish(message string, mutate func(*models.GameState)) {
	a.mu.Lock()
	a.state.IsLoading = false
	if message != "" {
		a.state.Message = message
	}
	if mutate != nil {
		mutate(&a.state)
	}
	subs, snap := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(subs, snap)
}

func (a *Adapter) refresh(ctx context.Context) (models.GameState, error) {
	snap, err := a.contract.GetGameState(ctx, a.account)
	if err != nil {
		a.logger.Warn("refresh game state failed", zap.Error(err))
		a.mu.Lock()
		a.state.Message = msgRefreshError
		subs, state := a.snapshotLocked()
		a.mu.Unlock()
		a.publish(subs, state)
		return state, fmt.Errorf("failed to refresh game state: %w", err)
	}

	a.mu.Lock()
	a.state.GameInProgress = snap.InProgress
	a.state.CurrentPosition = int(snap.Position)
	a.state.PrizePool = formatEther(snap.PrizePool)
	a.state.Message = statusMessage(snap.InProgress, int(snap.Position))
	subs, state := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(subs, state)
	return state, nil
}

// snapshotLocked captures subscribers and state so notification can run
// outside the lock. Callers must hold mu.
func (a *Adapter) snapshotLocked() ([]Subscriber, models.GameState) {
	subs := make([]Subscriber, 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	return subs, a.state
}

func (a *Adapter) publish(subs []Subscriber, state models.GameState) {
	for _, fn := range subs {
		fn(state)
	}
}

// statusMessage maps the contract read onto the user-facing status line
func statusMessage(inProgress bool, position int) string {
	if inProgress {
		if position == 0 {
			return msgInProgressZero
		}
		return fmt.Sprintf("You're at position %d", position)
	}
	if position == 100 {
		return msgWon
	}
	return msgReady
}

// summarizeRoll folds decoded events into the roll value and the status
// message. Each recognized event contributes one clause in emission
// order; a win replaces the message outright.
func summarizeRoll(events []snakes.Event) (int, string) {
	roll := 0
	message := "Dice rolled!"

	for _, ev := range events {
		switch e := ev.(type) {
		case snakes.DiceRolled:
			roll = int(e.DiceValue)
			message = fmt.Sprintf("You rolled a %d!", e.DiceValue)
		case snakes.SnakeHit:
			message += fmt.Sprintf(" Snake bite! Moved from %d to %d", e.FromPosition, e.ToPosition)
		case snakes.LadderClimbed:
			message += fmt.Sprintf(" Ladder climb! Moved from %d to %d", e.FromPosition, e.ToPosition)
		case snakes.GameWon:
			message = msgRollWon
		}
	}

	return roll, message
}

// failureMessage distinguishes a user-cancelled transaction from every
// other failure
func failureMessage(err error, generic string) string {
	if errors.Is(err, ErrUserRejected) {
		return msgCancelled
	}
	return generic
}
