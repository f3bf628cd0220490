package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/wallet"
	"github.com/hexhaus/chainladders/internal/wallet/mocks"
)

type ManagerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockProvider *mocks.MockProvider
	manager      *wallet.Manager
	ctx          context.Context

	testAccount string
}

func (s *ManagerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockProvider = mocks.NewMockProvider(s.mockCtrl)
	s.ctx = context.Background()
	s.testAccount = "0x3394e568B58FE88dF143815bf6c82bE24042ee17"

	manager, err := wallet.New(&wallet.Config{Provider: s.mockProvider})
	s.Require().NoError(err)
	s.manager = manager
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) TestConnectWithoutProvider() {
	manager, err := wallet.New(&wallet.Config{})
	s.Require().NoError(err)

	session, err := manager.Connect(s.ctx)
	s.ErrorIs(err, wallet.ErrNoProvider)
	s.False(session.IsConnected)
	s.False(session.IsCorrectNetwork)
	s.Empty(session.Account)
}

func (s *ManagerTestSuite) TestConnectOnCorrectNetwork() {
	s.mockProvider.EXPECT().
		RequestAccounts(gomock.Any()).
		Return([]string{s.testAccount}, nil)
	s.mockProvider.EXPECT().
		ChainID(gomock.Any()).
		Return(wallet.SepoliaChainID, nil)

	session, err := s.manager.Connect(s.ctx)
	s.Require().NoError(err)
	s.True(session.IsConnected)
	s.True(session.IsCorrectNetwork)
	s.Equal(s.testAccount, session.Account)
}

func (s *ManagerTestSuite) TestConnectSwitchesWrongNetworkOnce() {
	s.mockProvider.EXPECT().
		RequestAccounts(gomock.Any()).
		Return([]string{s.testAccount}, nil)
	s.mockProvider.EXPECT().
		ChainID(gomock.Any()).
		Return("0x1", nil)
	s.mockProvider.EXPECT().
		SwitchChain(gomock.Any(), wallet.SepoliaChainID).
		Return(nil)

	session, err := s.manager.Connect(s.ctx)
	s.Require().NoError(err)
	s.True(session.IsConnected)
	s.True(session.IsCorrectNetwork)
}

func (s *ManagerTestSuite) TestSwitchFallsBackToAddChain() {
	s.mockProvider.EXPECT().
		SwitchChain(gomock.Any(), wallet.SepoliaChainID).
		Return(wallet.ErrUnknownChain)
	s.mockProvider.EXPECT().
		AddChain(gomock.Any(), wallet.SepoliaChain).
		Return(nil)

	err := s.manager.SwitchNetwork(s.ctx)
	s.Require().NoError(err)
	s.True(s.manager.Session().IsCorrectNetwork)
}

func (s *ManagerTestSuite) TestSwitchAddChainFailure() {
	s.mockProvider.EXPECT().
		SwitchChain(gomock.Any(), wallet.SepoliaChainID).
		Return(wallet.ErrUnknownChain)
	s.mockProvider.EXPECT().
		AddChain(gomock.Any(), wallet.SepoliaChain).
		Return(errors.New("user dismissed"))

	err := s.manager.SwitchNetwork(s.ctx)
	s.Error(err)
	s.False(s.manager.Session().IsCorrectNetwork)
}

func (s *ManagerTestSuite) TestConnectRejectedLeavesStateUnchanged() {
	s.mockProvider.EXPECT().
		RequestAccounts(gomock.Any()).
		Return(nil, wallet.ErrUserRejected)

	session, err := s.manager.Connect(s.ctx)
	s.ErrorIs(err, wallet.ErrUserRejected)
	s.False(session.IsConnected)
}

func (s *ManagerTestSuite) TestConnectWithNoAccountsStaysDisconnected() {
	s.mockProvider.EXPECT().
		RequestAccounts(gomock.Any()).
		Return([]string{}, nil)

	session, err := s.manager.Connect(s.ctx)
	s.Require().NoError(err)
	s.False(session.IsConnected)
}

func (s *ManagerTestSuite) TestCheckConnectionDoesNotPrompt() {
	s.mockProvider.EXPECT().
		Accounts(gomock.Any()).
		Return([]string{s.testAccount}, nil)
	s.mockProvider.EXPECT().
		ChainID(gomock.Any()).
		Return(wallet.SepoliaChainID, nil)

	s.manager.CheckConnection(s.ctx)

	session := s.manager.Session()
	s.True(session.IsConnected)
	s.True(session.IsCorrectNetwork)
}

// runManager starts the event loop against stub provider channels and
// returns a channel of observed sessions
func (s *ManagerTestSuite) runManager(accountsCh chan []string, chainCh chan string) (<-chan models.WalletSession, context.CancelFunc) {
	s.mockProvider.EXPECT().
		AccountsChanged().
		Return((<-chan []string)(accountsCh))
	s.mockProvider.EXPECT().
		ChainChanged().
		Return((<-chan string)(chainCh))

	sessions := make(chan models.WalletSession, 16)
	s.manager.Subscribe(func(session models.WalletSession) {
		sessions <- session
	})

	ctx, cancel := context.WithCancel(s.ctx)
	go s.manager.Run(ctx)
	return sessions, cancel
}

func (s *ManagerTestSuite) waitSession(sessions <-chan models.WalletSession) models.WalletSession {
	select {
	case session := <-sessions:
		return session
	case <-time.After(5 * time.Second):
		s.FailNow("timed out waiting for session update")
		return models.WalletSession{}
	}
}

func (s *ManagerTestSuite) TestEmptyAccountsEventForcesDisconnect() {
	accountsCh := make(chan []string)
	chainCh := make(chan string)
	sessions, cancel := s.runManager(accountsCh, chainCh)
	defer cancel()

	accountsCh <- []string{}

	session := s.waitSession(sessions)
	s.False(session.IsConnected)
	s.False(session.IsCorrectNetwork)
	s.Empty(session.Account)
}

func (s *ManagerTestSuite) TestAccountsEventRevalidatesNetwork() {
	accountsCh := make(chan []string)
	chainCh := make(chan string)
	sessions, cancel := s.runManager(accountsCh, chainCh)
	defer cancel()

	s.mockProvider.EXPECT().
		ChainID(gomock.Any()).
		Return(wallet.SepoliaChainID, nil)

	accountsCh <- []string{s.testAccount}

	session := s.waitSession(sessions)
	s.True(session.IsConnected)
	s.True(session.IsCorrectNetwork)
	s.Equal(s.testAccount, session.Account)
}

func (s *ManagerTestSuite) TestChainEventUpdatesNetworkFlag() {
	accountsCh := make(chan []string)
	chainCh := make(chan string)
	sessions, cancel := s.runManager(accountsCh, chainCh)
	defer cancel()

	chainCh <- "0x1"
	session := s.waitSession(sessions)
	s.False(session.IsCorrectNetwork)

	chainCh <- wallet.SepoliaChainID
	session = s.waitSession(sessions)
	s.True(session.IsCorrectNetwork)
}
