package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Result types relayed from the redirect target to the waiting login
const (
	ResultTypeSuccess = "AUTH_SUCCESS"
	ResultTypeError   = "AUTH_ERROR"
)

// Define errors
var (
	ErrStateNotRegistered = errors.New("no login waiting for this state token")
	ErrAuthDenied         = errors.New("authorization failed")
)

// Result carries the OAuth callback outcome. Origin is where the
// callback arrived; results from any other origin than the relay's own
// are discarded unconditionally.
type Result struct {
	Origin string
	Type   string
	Code   string
	Err    string
}

// Relay hands OAuth callback outcomes to the login flow that initiated
// them, keyed by the anti-forgery state token. Waiting is bounded by the
// caller's context rather than by polling.
type Relay struct {
	origin string
	logger *zap.Logger

	mu      sync.Mutex
	waiters map[string]chan Result
}

// NewRelay creates a relay that only trusts results from the given origin
func NewRelay(origin string, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Relay{
		origin:  origin,
		logger:  logger,
		waiters: make(map[string]chan Result),
	}
}

// Register announces that a login flow will wait on the given state
// token. Must be called before the authorization URL is opened.
func (r *Relay) Register(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.waiters[state]; !ok {
		r.waiters[state] = make(chan Result, 1)
	}
}

// Deliver hands a callback result to the registered waiter. It reports
// whether anything accepted the result; mismatched origins and unknown
// state tokens are dropped.
func (r *Relay) Deliver(state string, result Result) bool {
	if result.Origin != r.origin {
		r.logger.Warn("discarding relay result from foreign origin",
			zap.String("origin", result.Origin))
		return false
	}

	r.mu.Lock()
	ch, ok := r.waiters[state]
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("relay result without a waiter", zap.String("state", state))
		return false
	}

	select {
	case ch <- result:
		return true
	default:
		// A result already arrived for this state; keep the first.
		return false
	}
}

// Await blocks until a result arrives for the state token or the context
// ends. On success it returns the authorization code.
func (r *Relay) Await(ctx context.Context, state string) (string, error) {
	r.mu.Lock()
	ch, ok := r.waiters[state]
	r.mu.Unlock()

	if !ok {
		return "", ErrStateNotRegistered
	}

	defer func() {
		r.mu.Lock()
		delete(r.waiters, state)
		r.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-ch:
		if result.Type != ResultTypeSuccess {
			if result.Err != "" {
				return "", fmt.Errorf("%w: %s", ErrAuthDenied, result.Err)
			}
			return "", ErrAuthDenied
		}
		return result.Code, nil
	}
}
