package stellarpay

import (
	"errors"
	"strings"
)

// Sentinel errors for wallet and gateway operations.
var (
	// ErrGatewayUnreachable indicates the gateway could not be reached or
	// timed out before returning a structured response.
	ErrGatewayUnreachable = errors.New("stellarpay: gateway unreachable")

	// ErrAccountNotFound indicates the address has no presence on the ledger.
	ErrAccountNotFound = errors.New("stellarpay: account not found on ledger")

	// ErrProviderDeclined indicates the user or the wallet provider refused
	// or cancelled the request.
	ErrProviderDeclined = errors.New("stellarpay: wallet provider declined")

	// ErrProviderUnavailable indicates the requested wallet provider is
	// missing or misconfigured.
	ErrProviderUnavailable = errors.New("stellarpay: wallet provider unavailable")

	// ErrNetworkMismatch indicates a signed envelope does not verify against
	// the expected network passphrase.
	ErrNetworkMismatch = errors.New("stellarpay: envelope signed for a different network")

	// ErrActionInFlight indicates another connect, disconnect, or submit
	// action is already in progress for this session.
	ErrActionInFlight = errors.New("stellarpay: another action is in flight")

	// ErrNotConnected indicates the action requires a connected wallet.
	ErrNotConnected = errors.New("stellarpay: no wallet connected")

	// ErrAlreadyConnected indicates a connect was attempted on a session
	// that already has a connected wallet.
	ErrAlreadyConnected = errors.New("stellarpay: wallet already connected")

	// ErrInvalidIntent indicates the payment intent failed validation.
	ErrInvalidIntent = errors.New("stellarpay: invalid payment intent")

	// ErrInvalidSeed indicates an invalid secret seed.
	ErrInvalidSeed = errors.New("stellarpay: invalid secret seed")
)

// RejectionError is a structured gateway rejection carrying the ledger
// result codes extracted from the response. It is the classifier's input;
// anything else is treated as an unstructured failure.
type RejectionError struct {
	// TransactionCode is the transaction-level result code (e.g. "tx_failed").
	TransactionCode string

	// OperationCodes are the per-operation result codes, in operation order.
	OperationCodes []string

	// Detail is the gateway's human-readable detail text, if any.
	Detail string
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	msg := "stellarpay: transaction rejected"
	if e.TransactionCode != "" {
		msg += ": " + e.TransactionCode
	}
	if len(e.OperationCodes) > 0 {
		msg += " (" + strings.Join(e.OperationCodes, ", ") + ")"
	}
	return msg
}

// ErrorCode represents session error codes for programmatic handling.
type ErrorCode string

const (
	// ErrCodeGateway indicates a gateway communication failure.
	ErrCodeGateway ErrorCode = "GATEWAY"

	// ErrCodeProvider indicates a wallet provider failure.
	ErrCodeProvider ErrorCode = "PROVIDER"

	// ErrCodeValidation indicates invalid user input.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeSession indicates a session lifecycle violation.
	ErrCodeSession ErrorCode = "SESSION"
)

// SessionError provides structured error information for failures caught
// at an action boundary (connect, disconnect, submit).
type SessionError struct {
	// Code is the error code for programmatic handling.
	Code ErrorCode

	// Message is the human-readable error message.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code ErrorCode, message string, err error) *SessionError {
	return &SessionError{Code: code, Message: message, Err: err}
}
