package stellarpay

import "context"

// WalletProvider is an external wallet capable of exposing an address and
// signing transaction envelopes. Implementations may show provider-native
// UI: Address and SignTransaction can block for an arbitrary, user-controlled
// time and must honour ctx cancellation, surfacing a decline as an error
// wrapping ErrProviderDeclined.
//
// The core treats the provider as opaque; the signed envelope's bytes are
// never inspected beyond re-encoding and network verification.
type WalletProvider interface {
	// Name returns the provider's display name.
	Name() string

	// Address returns the account address the provider controls.
	Address(ctx context.Context) (string, error)

	// SignTransaction signs a base64 envelope for the given network
	// passphrase and returns the signed base64 envelope. The passphrase is
	// a safety gate: a signature for the wrong network is cryptographically
	// valid but semantically wrong, so providers must refuse to sign for a
	// network they are not configured for.
	SignTransaction(ctx context.Context, envelopeXDR, networkPassphrase string) (string, error)

	// Disconnect ends the provider session. Best-effort; callers proceed
	// with their local cleanup even when it fails.
	Disconnect(ctx context.Context) error
}
