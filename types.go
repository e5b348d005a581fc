// Package stellarpay implements the transaction lifecycle for a Stellar
// testnet wallet: loading account state through a Horizon-compatible
// gateway, building and signing a single native-asset payment, submitting
// it, and classifying gateway rejections into actionable reasons.
//
// The package defines the shared data model and the collaborator
// interfaces; the concrete pieces live in the subpackages:
//
//   - horizon:  gateway client (account reads, transaction submission)
//   - tx:       envelope building and signed-envelope verification
//   - wallet:   wallet provider registry and the local keypair provider
//   - session:  connect/disconnect lifecycle and the payment pipeline
//
// Import path: github.com/nacorid/stellarpay
package stellarpay

// Balance is one entry in an account's balance list, in gateway order.
type Balance struct {
	// AssetType is "native" for lumens, or the issued-asset type otherwise.
	AssetType string `json:"asset_type"`

	// AssetCode is the issued-asset code (empty for native).
	AssetCode string `json:"asset_code,omitempty"`

	// Issuer is the issued-asset issuer account (empty for native).
	Issuer string `json:"asset_issuer,omitempty"`

	// Amount is the balance as a decimal string (e.g. "100.0000000").
	Amount string `json:"balance"`
}

// AccountSnapshot is the ledger state of an account at load time.
//
// Sequence is single-use: a snapshot feeds exactly one transaction build
// and must be fetched fresh before any further attempt, because the
// sequence number it embeds is consumed whether or not the submission
// succeeds.
type AccountSnapshot struct {
	// Address is the account's public key.
	Address string

	// Sequence is the account's current sequence number.
	Sequence int64

	// Balances is the account's balance list, in gateway order.
	Balances []Balance
}

// NativeBalance returns the native-asset amount from the snapshot.
// An account with no native entry reads as "0"; that is a valid state,
// not an error.
func (s *AccountSnapshot) NativeBalance() string {
	for _, b := range s.Balances {
		if b.AssetType == "native" {
			return b.Amount
		}
	}
	return "0"
}

// PaymentIntent is a user-supplied request to send the native asset.
type PaymentIntent struct {
	// Destination is the recipient account's public key.
	Destination string

	// Amount is the payment amount as a decimal string, with at most
	// seven decimal places.
	Amount string
}

// SubmitResult is a gateway confirmation for an accepted transaction.
type SubmitResult struct {
	// TransactionID is the transaction hash assigned by the ledger.
	TransactionID string

	// Ledger is the ledger number the transaction was included in.
	Ledger int32
}

// OutcomeKind discriminates the SubmissionOutcome sum type.
type OutcomeKind string

const (
	// OutcomeConfirmed indicates the gateway accepted the transaction.
	OutcomeConfirmed OutcomeKind = "confirmed"

	// OutcomeRejected indicates the gateway rejected the transaction or
	// could not be reached.
	OutcomeRejected OutcomeKind = "rejected"

	// OutcomeProviderDeclined indicates the wallet provider refused,
	// cancelled, or returned an unusable signature.
	OutcomeProviderDeclined OutcomeKind = "provider_declined"
)

// SubmissionOutcome is the result of one payment submission attempt.
type SubmissionOutcome struct {
	// Kind discriminates the outcome.
	Kind OutcomeKind

	// TransactionID is set when Kind is OutcomeConfirmed.
	TransactionID string

	// Reason is set when Kind is OutcomeRejected and the gateway
	// rejection carried structured result codes.
	Reason *ClassifiedReason

	// Message is the user-facing status text for the outcome.
	Message string

	// RefreshErr reports a failed balance refresh after a confirmed
	// payment. It never changes Kind: a confirmed payment stays
	// confirmed, the balance display is merely stale.
	RefreshErr error
}

// State is a session lifecycle state.
type State string

const (
	// StateDisconnected means no wallet is connected.
	StateDisconnected State = "disconnected"

	// StateConnecting means a connect attempt is in progress.
	StateConnecting State = "connecting"

	// StateConnected means a wallet is connected and an address is set.
	StateConnected State = "connected"
)

// SessionState is a point-in-time view of the session, safe to retain.
type SessionState struct {
	// State is the lifecycle state.
	State State

	// WalletName is the connected provider's name (empty when disconnected).
	WalletName string

	// Address is the connected account (empty when disconnected).
	Address string

	// Balance is the last known native balance as a decimal string.
	Balance string

	// LastOutcome is the most recent submission outcome, if any.
	LastOutcome *SubmissionOutcome
}
