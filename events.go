package stellarpay

import "time"

// SessionEventType represents the type of session event.
type SessionEventType string

const (
	// SessionEventAttempt indicates a payment submission is being attempted.
	SessionEventAttempt SessionEventType = "attempt"

	// SessionEventSuccess indicates a payment submission was confirmed.
	SessionEventSuccess SessionEventType = "success"

	// SessionEventFailure indicates a payment submission failed.
	SessionEventFailure SessionEventType = "failure"
)

// SessionEvent is a payment lifecycle event emitted by the session manager,
// intended for logging, monitoring, and debugging.
type SessionEvent struct {
	// Type is the event type (attempt, success, failure).
	Type SessionEventType

	// ID correlates the attempt event with its success or failure event.
	ID string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Address is the source account.
	Address string

	// Destination is the payment recipient.
	Destination string

	// Amount is the payment amount as a decimal string.
	Amount string

	// TransactionID is the ledger transaction hash (available on success).
	TransactionID string

	// Outcome is the submission outcome (available on success and failure).
	Outcome *SubmissionOutcome

	// Error contains error details (available on failure).
	Error error

	// Duration is the time taken for the submission attempt.
	Duration time.Duration
}

// SessionCallback is a function that handles session events. Callbacks are
// invoked synchronously during the payment flow, so they should be fast to
// avoid blocking it.
type SessionCallback func(SessionEvent)
