// Package local implements a keypair-backed wallet provider. It is the
// in-process analog of a browser wallet extension, useful for the CLI and
// for tests.
package local

import (
	"context"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	"github.com/nacorid/stellarpay"
)

// Wallet signs envelopes with a locally held keypair. It is bound to a
// single network passphrase at construction and declines requests for any
// other network.
type Wallet struct {
	kp                *keypair.Full
	networkPassphrase string
	name              string
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithName sets the wallet's display name.
func WithName(name string) Option {
	return func(w *Wallet) {
		w.name = name
	}
}

// New creates a Wallet from a secret seed.
func New(secretSeed, networkPassphrase string, opts ...Option) (*Wallet, error) {
	kp, err := keypair.ParseFull(secretSeed)
	if err != nil {
		return nil, stellarpay.ErrInvalidSeed
	}
	if networkPassphrase == "" {
		return nil, fmt.Errorf("%w: network passphrase cannot be empty", stellarpay.ErrProviderUnavailable)
	}

	w := &Wallet{
		kp:                kp,
		networkPassphrase: networkPassphrase,
		name:              "local",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Verify that Wallet implements stellarpay.WalletProvider.
var _ stellarpay.WalletProvider = (*Wallet)(nil)

// Name implements stellarpay.WalletProvider.
func (w *Wallet) Name() string {
	return w.name
}

// Address implements stellarpay.WalletProvider.
func (w *Wallet) Address(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", stellarpay.ErrProviderDeclined, err)
	}
	return w.kp.Address(), nil
}

// SignTransaction implements stellarpay.WalletProvider. A request for a
// passphrase other than the wallet's configured one is declined rather
// than signed: the signature would verify on the wrong network.
func (w *Wallet) SignTransaction(ctx context.Context, envelopeXDR, networkPassphrase string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", stellarpay.ErrProviderDeclined, err)
	}
	if networkPassphrase != w.networkPassphrase {
		return "", fmt.Errorf("%w: wallet signs only for its configured network", stellarpay.ErrProviderDeclined)
	}

	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable envelope: %v", stellarpay.ErrProviderDeclined, err)
	}
	unsigned, ok := generic.Transaction()
	if !ok {
		return "", fmt.Errorf("%w: envelope is not a simple transaction", stellarpay.ErrProviderDeclined)
	}

	signed, err := unsigned.Sign(networkPassphrase, w.kp)
	if err != nil {
		return "", fmt.Errorf("failed to sign envelope: %w", err)
	}
	return signed.Base64()
}

// Disconnect implements stellarpay.WalletProvider. The keypair stays in
// memory; there is no remote session to end.
func (w *Wallet) Disconnect(ctx context.Context) error {
	return nil
}
