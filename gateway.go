package stellarpay

import "context"

// Gateway is the remote ledger-access service. Any concrete binding
// satisfying it is substitutable; tests use in-memory doubles, production
// code uses the horizon package.
type Gateway interface {
	// LoadAccount fetches the account state for an address. It fails with
	// ErrAccountNotFound when the address has no ledger presence and
	// ErrGatewayUnreachable when no structured response is available.
	LoadAccount(ctx context.Context, address string) (*AccountSnapshot, error)

	// SubmitTransaction submits a signed base64 envelope. A structured
	// gateway rejection is returned as a *RejectionError; a transport-level
	// failure wraps ErrGatewayUnreachable. Calls are bounded by the
	// transport timeout and never retried.
	SubmitTransaction(ctx context.Context, envelopeXDR string) (*SubmitResult, error)
}
