package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/wallet"
)

// ProviderConfig holds configuration for the RPC-backed wallet provider
type ProviderConfig struct {
	// Accounts the provider exposes once access is granted
	Accounts []string

	// Chains the provider knows initially. The Sepolia definition is
	// always included.
	Chains []wallet.ChainParams

	// CurrentChainID selects the initially active chain. Defaults to
	// Sepolia.
	CurrentChainID string

	// Optional logger
	Logger *zap.Logger
}

// RPCProvider implements wallet.Provider against plain JSON-RPC
// endpoints. Each registered chain id maps to an RPC URL; switching
// chains dials the endpoint and verifies the node really serves that
// chain. Chains the provider has no registration for surface
// wallet.ErrUnknownChain, which makes the manager fall back to AddChain.
type RPCProvider struct {
	logger *zap.Logger

	mu         sync.Mutex
	accounts   []string
	authorized bool
	chains     map[string]wallet.ChainParams
	current    string
	client     *ethclient.Client

	accountsCh chan []string
	chainCh    chan string
}

// NewRPCProvider creates a provider over the given accounts and chains
func NewRPCProvider(cfg *ProviderConfig) (*RPCProvider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chains := map[string]wallet.ChainParams{
		wallet.SepoliaChain.ChainID: wallet.SepoliaChain,
	}
	for _, c := range cfg.Chains {
		if c.ChainID == "" {
			return nil, errors.New("chain definition is missing a chain id")
		}
		chains[c.ChainID] = c
	}

	current := cfg.CurrentChainID
	if current == "" {
		current = wallet.SepoliaChainID
	}

	return &RPCProvider{
		logger:     logger,
		accounts:   append([]string(nil), cfg.Accounts...),
		chains:     chains,
		current:    current,
		accountsCh: make(chan []string, 4),
		chainCh:    make(chan string, 4),
	}, nil
}

// RequestAccounts grants access to the configured accounts
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.authorized = true
	return append([]string(nil), p.accounts...), nil
}

// Accounts returns the accounts without prompting; empty until access
// has been requested
func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.authorized {
		return []string{}, nil
	}
	return append([]string(nil), p.accounts...), nil
}

// ChainID queries the active endpoint for its chain id
func (p *RPCProvider) ChainID(ctx context.Context) (string, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	id, err := client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read chain id: %w", err)
	}

	return hexutil.EncodeBig(id), nil
}

// SwitchChain dials the endpoint registered for the chain id and makes
// it the active chain
func (p *RPCProvider) SwitchChain(ctx context.Context, chainID string) error {
	p.mu.Lock()
	params, ok := p.chains[chainID]
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("no RPC endpoint registered for %s: %w", chainID, wallet.ErrUnknownChain)
	}

	client, err := dialAndVerify(ctx, params)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.client != nil {
		p.client.Close()
	}
	p.client = client
	p.current = chainID
	p.mu.Unlock()

	p.emitChain(chainID)
	return nil
}

// AddChain registers a chain definition and selects it
func (p *RPCProvider) AddChain(ctx context.Context, params wallet.ChainParams) error {
	if params.ChainID == "" || params.RPCURL == "" {
		return errors.New("chain definition requires a chain id and an RPC URL")
	}

	p.mu.Lock()
	p.chains[params.ChainID] = params
	p.mu.Unlock()

	return p.SwitchChain(ctx, params.ChainID)
}

// AccountsChanged delivers account list changes
func (p *RPCProvider) AccountsChanged() <-chan []string {
	return p.accountsCh
}

// ChainChanged delivers chain id changes
func (p *RPCProvider) ChainChanged() <-chan string {
	return p.chainCh
}

// SetAccounts replaces the account list and notifies listeners. An empty
// list is how a local operator forces a disconnect.
func (p *RPCProvider) SetAccounts(accounts []string) {
	p.mu.Lock()
	p.accounts = append([]string(nil), accounts...)
	p.mu.Unlock()

	select {
	case p.accountsCh <- append([]string(nil), accounts...):
	default:
		p.logger.Warn("accounts change dropped, listener lagging")
	}
}

// Client returns the active RPC client, dialing it on first use
func (p *RPCProvider) Client(ctx context.Context) (*ethclient.Client, error) {
	return p.ensureClient(ctx)
}

func (p *RPCProvider) ensureClient(ctx context.Context) (*ethclient.Client, error) {
	p.mu.Lock()
	if p.client != nil {
		client := p.client
		p.mu.Unlock()
		return client, nil
	}
	params, ok := p.chains[p.current]
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no RPC endpoint registered for %s: %w", p.current, wallet.ErrUnknownChain)
	}

	client, err := dialAndVerify(ctx, params)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.client == nil {
		p.client = client
	} else {
		client.Close()
		client = p.client
	}
	p.mu.Unlock()

	return client, nil
}

func (p *RPCProvider) emitChain(chainID string) {
	select {
	case p.chainCh <- chainID:
	default:
		p.logger.Warn("chain change dropped, listener lagging")
	}
}

func dialAndVerify(ctx context.Context, params wallet.ChainParams) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, params.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", params.RPCURL, err)
	}

	id, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id from %s: %w", params.RPCURL, err)
	}

	if got := hexutil.EncodeBig(id); got != params.ChainID {
		client.Close()
		return nil, fmt.Errorf("endpoint %s serves chain %s, expected %s", params.RPCURL, got, params.ChainID)
	}

	return client, nil
}
