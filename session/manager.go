// Package session owns the wallet session lifecycle and the payment
// submission pipeline. Every user action (connect, disconnect, submit)
// runs behind a single in-flight token, so at most one action touches the
// session state at a time.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/wallet"
)

// Manager is the session manager. It holds the currently selected wallet
// and address, the last known balance, and the last submission outcome.
type Manager struct {
	gateway stellarpay.Gateway
	wallets *wallet.Registry
	policy  stellarpay.Policy
	log     *slog.Logger

	onAttempt stellarpay.SessionCallback
	onSuccess stellarpay.SessionCallback
	onFailure stellarpay.SessionCallback

	mu          sync.Mutex
	busy        bool
	state       stellarpay.State
	provider    stellarpay.WalletProvider
	walletName  string
	address     string
	balance     string
	lastOutcome *stellarpay.SubmissionOutcome
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithCallbacks sets the session event callbacks. Pass nil for any callback
// you don't want to set.
func WithCallbacks(onAttempt, onSuccess, onFailure stellarpay.SessionCallback) Option {
	return func(m *Manager) {
		m.onAttempt = onAttempt
		m.onSuccess = onSuccess
		m.onFailure = onFailure
	}
}

// New creates a Manager in the Disconnected state.
func New(gateway stellarpay.Gateway, wallets *wallet.Registry, policy stellarpay.Policy, opts ...Option) (*Manager, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway cannot be nil")
	}
	if wallets == nil {
		return nil, fmt.Errorf("wallet registry cannot be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	m := &Manager{
		gateway: gateway,
		wallets: wallets,
		policy:  policy,
		log:     slog.Default(),
		state:   stellarpay.StateDisconnected,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns a point-in-time snapshot of the session.
func (m *Manager) State() stellarpay.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return stellarpay.SessionState{
		State:       m.state,
		WalletName:  m.walletName,
		Address:     m.address,
		Balance:     m.balance,
		LastOutcome: m.lastOutcome,
	}
}

// begin acquires the in-flight action token. Connect, disconnect, and
// submit are mutually exclusive: a second action while one is pending
// fails locally with ErrActionInFlight and never reaches the gateway.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return stellarpay.ErrActionInFlight
	}
	m.busy = true
	return nil
}

// end releases the in-flight action token.
func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// reset clears all session state back to Disconnected, including any
// partial state left by a failed connect.
func (m *Manager) reset() {
	m.mu.Lock()
	m.state = stellarpay.StateDisconnected
	m.provider = nil
	m.walletName = ""
	m.address = ""
	m.balance = ""
	m.lastOutcome = nil
	m.mu.Unlock()
}

// Connect selects the wallet registered under walletID, requests its
// address, and loads the account state. On any failure the session fully
// reverts to Disconnected.
func (m *Manager) Connect(ctx context.Context, walletID string) (stellarpay.SessionState, error) {
	if err := m.begin(); err != nil {
		return m.State(), err
	}
	defer m.end()

	m.mu.Lock()
	if m.state == stellarpay.StateConnected {
		m.mu.Unlock()
		return m.State(), stellarpay.ErrAlreadyConnected
	}
	m.state = stellarpay.StateConnecting
	m.mu.Unlock()

	provider, err := m.wallets.Select(walletID)
	if err != nil {
		m.reset()
		return m.State(), err
	}

	m.mu.Lock()
	m.walletName = provider.Name()
	m.mu.Unlock()

	address, err := provider.Address(ctx)
	if err != nil {
		m.reset()
		return m.State(), stellarpay.NewSessionError(stellarpay.ErrCodeProvider, "failed to request address", err)
	}

	snapshot, err := m.gateway.LoadAccount(ctx, address)
	if err != nil {
		m.reset()
		return m.State(), stellarpay.NewSessionError(stellarpay.ErrCodeGateway, "failed to load account", err)
	}

	m.mu.Lock()
	m.state = stellarpay.StateConnected
	m.provider = provider
	m.address = address
	m.balance = snapshot.NativeBalance()
	m.mu.Unlock()

	m.log.Info("wallet connected", "wallet", provider.Name(), "address", address)
	return m.State(), nil
}

// Disconnect clears the session. The provider is notified best-effort; a
// notification failure is logged and never blocks the local clear.
func (m *Manager) Disconnect(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	m.mu.Lock()
	provider := m.provider
	m.mu.Unlock()

	if provider != nil {
		if err := provider.Disconnect(ctx); err != nil {
			m.log.Warn("wallet disconnect notification failed", "wallet", provider.Name(), "err", err)
		}
	}

	m.reset()
	m.log.Info("wallet disconnected")
	return nil
}
