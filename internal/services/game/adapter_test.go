package game_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/services/game"
	"github.com/hexhaus/chainladders/internal/services/game/mocks"
	"github.com/hexhaus/chainladders/internal/snakes"
)

type AdapterTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockContract *mocks.MockContract
	adapter      *game.Adapter
	ctx          context.Context

	testAccount string
	testStake   *big.Int
}

func (s *AdapterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockContract = mocks.NewMockContract(s.mockCtrl)
	s.ctx = context.Background()

	s.testAccount = "0x3394e568B58FE88dF143815bf6c82bE24042ee17"
	s.testStake = big.NewInt(10_000_000_000_000_000)

	adapter, err := game.New(&game.Config{
		Contract: s.mockContract,
		Account:  s.testAccount,
		Stake:    s.testStake,
	})
	s.Require().NoError(err)
	s.adapter = adapter
}

func TestAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

// packLog builds a receipt log the way the contract emits it
func (s *AdapterTestSuite) packLog(name string, values ...interface{}) *types.Log {
	contract, err := snakes.ABI()
	s.Require().NoError(err)

	ev, ok := contract.Events[name]
	s.Require().True(ok, "unknown event %s", name)

	data, err := ev.Inputs.NonIndexed().Pack(values...)
	s.Require().NoError(err)

	player := common.HexToAddress(s.testAccount)
	return &types.Log{
		Topics: []common.Hash{ev.ID, common.BytesToHash(player.Bytes())},
		Data:   data,
	}
}

func (s *AdapterTestSuite) expectGameState(snap *game.Snapshot) *gomock.Call {
	return s.mockContract.EXPECT().
		GetGameState(gomock.Any(), s.testAccount).
		Return(snap, nil)
}

func (s *AdapterTestSuite) TestNewValidatesConfig() {
	_, err := game.New(nil)
	s.ErrorIs(err, game.ErrNilConfig)

	_, err = game.New(&game.Config{Account: s.testAccount})
	s.ErrorIs(err, game.ErrNilContract)

	_, err = game.New(&game.Config{Contract: s.mockContract})
	s.ErrorIs(err, game.ErrNoAccount)
}

func (s *AdapterTestSuite) TestInitialState() {
	state := s.adapter.State()
	s.False(state.GameInProgress)
	s.False(state.IsLoading)
	s.Equal("0", state.PrizePool)
	s.Equal("Welcome to Crypto Snakes & Ladders!", state.Message)
}

func (s *AdapterTestSuite) TestRefreshMapsSnapshot() {
	s.expectGameState(&game.Snapshot{
		InProgress: true,
		Position:   23,
		PrizePool:  big.NewInt(20_000_000_000_000_000),
	})

	state, err := s.adapter.Refresh(s.ctx)
	s.Require().NoError(err)
	s.True(state.GameInProgress)
	s.Equal(23, state.CurrentPosition)
	s.Equal("0.02", state.PrizePool)
	s.Equal("You're at position 23", state.Message)
}

func (s *AdapterTestSuite) TestRefreshMessagePolicy() {
	cases := []struct {
		name       string
		inProgress bool
		position   uint64
		message    string
	}{
		{"fresh game", true, 0, "Game started! Roll the dice!"},
		{"mid game", true, 42, "You're at position 42"},
		{"won", false, 100, "Congratulations! You won!"},
		{"idle", false, 0, "Ready to start a new game!"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.expectGameState(&game.Snapshot{
				InProgress: tc.inProgress,
				Position:   tc.position,
				PrizePool:  big.NewInt(0),
			})

			state, err := s.adapter.Refresh(s.ctx)
			s.Require().NoError(err)
			s.Equal(tc.message, state.Message)
		})
	}
}

func (s *AdapterTestSuite) TestRefreshIsIdempotent() {
	snap := &game.Snapshot{
		InProgress: true,
		Position:   10,
		PrizePool:  big.NewInt(20_000_000_000_000_000),
	}
	s.expectGameState(snap)
	s.expectGameState(snap)

	first, err := s.adapter.Refresh(s.ctx)
	s.Require().NoError(err)
	second, err := s.adapter.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *AdapterTestSuite) TestRefreshErrorKeepsCache() {
	s.mockContract.EXPECT().
		GetGameState(gomock.Any(), s.testAccount).
		Return(nil, errors.New("rpc unavailable"))

	state, err := s.adapter.Refresh(s.ctx)
	s.Error(err)
	s.Equal("Error loading game state. Please try again.", state.Message)
	s.False(state.IsLoading)
}

func (s *AdapterTestSuite) TestStartHappyPath() {
	s.mockContract.EXPECT().
		StartGame(gomock.Any(), s.testStake).
		Return([]*types.Log{s.packLog("GameStarted", s.testStake)}, nil)
	s.expectGameState(&game.Snapshot{
		InProgress: true,
		Position:   0,
		PrizePool:  big.NewInt(10_000_000_000_000_000),
	})

	err := s.adapter.Start(s.ctx)
	s.Require().NoError(err)

	state := s.adapter.State()
	s.False(state.IsLoading)
	s.True(state.GameInProgress)
	s.Equal("Game started! Roll the dice to begin!", state.Message)
}

func (s *AdapterTestSuite) TestStartUserRejected() {
	s.mockContract.EXPECT().
		StartGame(gomock.Any(), s.testStake).
		Return(nil, game.ErrUserRejected)

	err := s.adapter.Start(s.ctx)
	s.ErrorIs(err, game.ErrUserRejected)

	state := s.adapter.State()
	s.False(state.IsLoading)
	s.Equal("Transaction cancelled by user", state.Message)
}

func (s *AdapterTestSuite) TestStartGenericFailure() {
	s.mockContract.EXPECT().
		StartGame(gomock.Any(), s.testStake).
		Return(nil, errors.New("insufficient funds"))

	err := s.adapter.Start(s.ctx)
	s.Error(err)

	state := s.adapter.State()
	s.False(state.IsLoading)
	s.Equal("Error starting game. Please try again.", state.Message)
}

func (s *AdapterTestSuite) TestRollDiceDecodesEvents() {
	logs := []*types.Log{
		s.packLog("DiceRolled", big.NewInt(4), big.NewInt(47)),
		s.packLog("SnakeHit", big.NewInt(47), big.NewInt(19)),
	}
	s.mockContract.EXPECT().RollDice(gomock.Any()).Return(logs, nil)
	s.expectGameState(&game.Snapshot{
		InProgress: true,
		Position:   19,
		PrizePool:  big.NewInt(10_000_000_000_000_000),
	})

	events, err := s.adapter.RollDice(s.ctx)
	s.Require().NoError(err)
	s.Len(events, 2)

	state := s.adapter.State()
	s.False(state.IsLoading)
	s.Equal(4, state.LastDiceRoll)
	s.Equal(19, state.CurrentPosition)
	s.Equal("You rolled a 4! Snake bite! Moved from 47 to 19", state.Message)
}

func (s *AdapterTestSuite) TestRollDiceWinReplacesMessage() {
	logs := []*types.Log{
		s.packLog("DiceRolled", big.NewInt(5), big.NewInt(100)),
		s.packLog("GameWon", big.NewInt(20_000_000_000_000_000)),
	}
	s.mockContract.EXPECT().RollDice(gomock.Any()).Return(logs, nil)
	s.expectGameState(&game.Snapshot{
		InProgress: false,
		Position:   100,
		PrizePool:  big.NewInt(0),
	})

	events, err := s.adapter.RollDice(s.ctx)
	s.Require().NoError(err)
	s.Len(events, 2)

	state := s.adapter.State()
	s.Equal(5, state.LastDiceRoll)
	s.Equal(100, state.CurrentPosition)
	s.Equal("Congratulations! You won the game!", state.Message)
}

func (s *AdapterTestSuite) TestRollDiceSkipsUnrecognizedLogs() {
	foreign := &types.Log{
		Topics: []common.Hash{common.HexToHash("0x1234")},
	}
	logs := []*types.Log{
		foreign,
		s.packLog("DiceRolled", big.NewInt(3), big.NewInt(3)),
	}
	s.mockContract.EXPECT().RollDice(gomock.Any()).Return(logs, nil)
	s.expectGameState(&game.Snapshot{
		InProgress: true,
		Position:   3,
		PrizePool:  big.NewInt(10_000_000_000_000_000),
	})

	events, err := s.adapter.RollDice(s.ctx)
	s.Require().NoError(err)
	s.Len(events, 2)
	_, unrecognized := events[0].(snakes.Unrecognized)
	s.True(unrecognized)

	s.Equal("You rolled a 3!", s.adapter.State().Message)
}

func (s *AdapterTestSuite) TestRollDiceRejectedLeavesStateClean() {
	s.mockContract.EXPECT().RollDice(gomock.Any()).Return(nil, game.ErrUserRejected)

	_, err := s.adapter.RollDice(s.ctx)
	s.ErrorIs(err, game.ErrUserRejected)

	state := s.adapter.State()
	s.False(state.IsLoading)
	s.Zero(state.LastDiceRoll)
	s.Equal("Transaction cancelled by user", state.Message)
}

func (s *AdapterTestSuite) TestResetClearsLastRoll() {
	rollLogs := []*types.Log{s.packLog("DiceRolled", big.NewInt(2), big.NewInt(2))}
	s.mockContract.EXPECT().RollDice(gomock.Any()).Return(rollLogs, nil)
	s.expectGameState(&game.Snapshot{InProgress: true, Position: 2, PrizePool: big.NewInt(0)})

	_, err := s.adapter.RollDice(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.adapter.State().LastDiceRoll)

	s.mockContract.EXPECT().
		ResetGame(gomock.Any()).
		Return([]*types.Log{s.packLog("GameReset")}, nil)
	s.expectGameState(&game.Snapshot{InProgress: false, Position: 0, PrizePool: big.NewInt(0)})

	err = s.adapter.Reset(s.ctx)
	s.Require().NoError(err)

	state := s.adapter.State()
	s.Zero(state.LastDiceRoll)
	s.Equal("Game reset. Ready to start a new game!", state.Message)
}

func (s *AdapterTestSuite) TestConcurrentSubmissionsAreRejected() {
	entered := make(chan struct{})
	release := make(chan struct{})

	s.mockContract.EXPECT().
		RollDice(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]*types.Log, error) {
			close(entered)
			<-release
			return []*types.Log{}, nil
		})
	s.expectGameState(&game.Snapshot{InProgress: true, Position: 1, PrizePool: big.NewInt(0)})

	done := make(chan error, 1)
	go func() {
		_, err := s.adapter.RollDice(s.ctx)
		done <- err
	}()

	<-entered
	_, err := s.adapter.RollDice(s.ctx)
	s.ErrorIs(err, game.ErrOperationInFlight)
	s.True(s.adapter.State().IsLoading)

	close(release)
	s.Require().NoError(<-done)
	s.False(s.adapter.State().IsLoading)
}

func (s *AdapterTestSuite) TestSubscribeObservesLoadingGate() {
	var loading []bool
	unsubscribe := s.adapter.Subscribe(func(state models.GameState) {
		loading = append(loading, state.IsLoading)
	})
	defer unsubscribe()

	s.mockContract.EXPECT().
		ResetGame(gomock.Any()).
		Return([]*types.Log{s.packLog("GameReset")}, nil)
	s.expectGameState(&game.Snapshot{InProgress: false, Position: 0, PrizePool: big.NewInt(0)})

	s.Require().NoError(s.adapter.Reset(s.ctx))

	// begin, refresh, finish
	s.Require().Len(loading, 3)
	s.True(loading[0])
	s.False(loading[len(loading)-1])
}
