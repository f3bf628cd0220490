package wallet

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/models"
)

// Subscriber receives the wallet session after every change
type Subscriber func(session models.WalletSession)

// Manager tracks the connection to the wallet provider for one session:
// Disconnected, Connecting, then Connected on the right or wrong network.
// Provider failures are logged and leave the session unchanged except
// where the state machine says otherwise.
type Manager struct {
	provider Provider
	required string
	chain    ChainParams
	logger   *zap.Logger

	mu         sync.Mutex
	session    models.WalletSession
	connecting bool
	subs       map[int]Subscriber
	nextSubID  int
}

// New creates a new wallet session manager
func New(cfg *Config) (*Manager, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	required := cfg.RequiredChainID
	if required == "" {
		required = SepoliaChainID
	}

	chain := cfg.Chain
	if chain.ChainID == "" {
		chain = SepoliaChain
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		provider: cfg.Provider,
		required: required,
		chain:    chain,
		logger:   logger,
		subs:     make(map[int]Subscriber),
	}, nil
}

// Session returns a snapshot of the current wallet session
func (m *Manager) Session() models.WalletSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Subscribe registers a callback invoked after every session change. The
// returned function removes the subscription.
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Connect requests account access from the provider. On success it reads
// the chain id and, when the network is wrong, attempts one automatic
// switch.
func (m *Manager) Connect(ctx context.Context) (models.WalletSession, error) {
	if m.provider == nil {
		m.logger.Warn("connect attempted without a wallet provider")
		return m.Session(), ErrNoProvider
	}

	m.mu.Lock()
	if m.connecting {
		m.mu.Unlock()
		return m.Session(), nil
	}
	m.connecting = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.connecting = false
		m.mu.Unlock()
	}()

	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		m.logger.Warn("wallet connect failed", zap.Error(err))
		return m.Session(), err
	}

	if len(accounts) == 0 {
		return m.Session(), nil
	}

	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		m.logger.Warn("chain id read failed", zap.Error(err))
		return m.Session(), err
	}

	correct := chainID == m.required
	m.setSession(models.WalletSession{
		Account:          accounts[0],
		IsConnected:      true,
		IsCorrectNetwork: correct,
	})

	if !correct {
		if err := m.SwitchNetwork(ctx); err != nil {
			m.logger.Warn("automatic network switch failed", zap.Error(err))
		}
	}

	return m.Session(), nil
}

// CheckConnection re-derives the session from the provider without
// prompting the user
func (m *Manager) CheckConnection(ctx context.Context) {
	if m.provider == nil {
		return
	}

	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		m.logger.Warn("connection check failed", zap.Error(err))
		return
	}

	if len(accounts) == 0 {
		return
	}

	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		m.logger.Warn("chain id read failed", zap.Error(err))
		return
	}

	m.setSession(models.WalletSession{
		Account:          accounts[0],
		IsConnected:      true,
		IsCorrectNetwork: chainID == m.required,
	})
}

// SwitchNetwork asks the provider to select the required chain. If the
// provider does not know the chain, it is asked to add the definition
// instead.
func (m *Manager) SwitchNetwork(ctx context.Context) error {
	if m.provider == nil {
		return ErrNoProvider
	}

	err := m.provider.SwitchChain(ctx, m.required)
	if err == nil {
		m.markCorrectNetwork()
		return nil
	}

	if errors.Is(err, ErrUnknownChain) {
		if addErr := m.provider.AddChain(ctx, m.chain); addErr != nil {
			m.logger.Warn("adding required chain failed", zap.Error(addErr))
			return addErr
		}
		m.markCorrectNetwork()
		return nil
	}

	m.logger.Warn("network switch failed", zap.Error(err))
	return err
}

// Run consumes provider change notifications until the context ends. An
// empty accounts list forces a full disconnect; a non-empty one
// re-validates the network.
func (m *Manager) Run(ctx context.Context) {
	if m.provider == nil {
		return
	}

	accountsCh := m.provider.AccountsChanged()
	chainCh := m.provider.ChainChanged()

	for {
		select {
		case <-ctx.Done():
			return
		case accounts, ok := <-accountsCh:
			if !ok {
				return
			}
			m.handleAccountsChanged(ctx, accounts)
		case chainID, ok := <-chainCh:
			if !ok {
				return
			}
			m.handleChainChanged(chainID)
		}
	}
}

func (m *Manager) handleAccountsChanged(ctx context.Context, accounts []string) {
	if len(accounts) == 0 {
		m.setSession(models.WalletSession{})
		return
	}

	correct := false
	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		m.logger.Warn("chain id read failed", zap.Error(err))
	} else {
		correct = chainID == m.required
	}

	m.setSession(models.WalletSession{
		Account:          accounts[0],
		IsConnected:      true,
		IsCorrectNetwork: correct,
	})
}

func (m *Manager) handleChainChanged(chainID string) {
	m.mu.Lock()
	m.session.IsCorrectNetwork = chainID == m.required
	subs, session := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, session)
}

func (m *Manager) markCorrectNetwork() {
	m.mu.Lock()
	m.session.IsCorrectNetwork = true
	subs, session := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, session)
}

func (m *Manager) setSession(session models.WalletSession) {
	m.mu.Lock()
	m.session = session
	subs, snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, snap)
}

// snapshotLocked captures subscribers and session for notification
// outside the lock. Callers must hold mu.
func (m *Manager) snapshotLocked() ([]Subscriber, models.WalletSession) {
	subs := make([]Subscriber, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs, m.session
}

func (m *Manager) notify(subs []Subscriber, session models.WalletSession) {
	for _, fn := range subs {
		fn(session)
	}
}
