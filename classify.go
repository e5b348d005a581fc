package stellarpay

import "errors"

// ReasonKind identifies a classified rejection reason.
type ReasonKind string

const (
	// ReasonDestinationNotFunded means the destination account does not
	// exist on the ledger. Remediation: fund the destination first.
	ReasonDestinationNotFunded ReasonKind = "destination_not_funded"

	// ReasonStaleSequence means the transaction carried an already-consumed
	// sequence number. Remediation: refresh the account and retry.
	ReasonStaleSequence ReasonKind = "stale_sequence"

	// ReasonGeneric covers any other transaction-level rejection; the raw
	// codes are surfaced for the user.
	ReasonGeneric ReasonKind = "generic"
)

// Ledger result codes with externally specified meaning.
const (
	codeOpNoDestination = "op_no_destination"
	codeTxBadSeq        = "tx_bad_seq"
)

// ClassifiedReason is a gateway rejection interpreted into an actionable
// category with a user-facing remediation message.
type ClassifiedReason struct {
	// Kind is the classified category.
	Kind ReasonKind

	// TransactionCode is the raw transaction-level result code.
	TransactionCode string

	// OperationCode is the matched or first operation-level result code,
	// empty when none was present.
	OperationCode string

	// Message is the user-facing remediation text.
	Message string
}

// Classify maps a gateway failure into a ClassifiedReason.
//
// Rules are evaluated in order, first match wins:
//
//  1. any operation code "op_no_destination"  -> ReasonDestinationNotFunded
//  2. transaction code "tx_bad_seq"           -> ReasonStaleSequence
//  3. any other non-empty transaction code    -> ReasonGeneric with raw codes
//  4. no structured codes extractable         -> nil
//
// A nil result means the error is not a structured gateway rejection and
// the caller should fall back to a generic message. Extend by appending
// rules here; the ordered list keeps match precedence auditable.
func Classify(err error) *ClassifiedReason {
	var rej *RejectionError
	if !errors.As(err, &rej) {
		return nil
	}

	for _, op := range rej.OperationCodes {
		if op == codeOpNoDestination {
			return &ClassifiedReason{
				Kind:            ReasonDestinationNotFunded,
				TransactionCode: rej.TransactionCode,
				OperationCode:   op,
				Message:         "the destination account does not exist on the ledger; fund it and try again",
			}
		}
	}

	if rej.TransactionCode == codeTxBadSeq {
		return &ClassifiedReason{
			Kind:            ReasonStaleSequence,
			TransactionCode: rej.TransactionCode,
			Message:         "the account sequence number was stale; refresh the account and try again",
		}
	}

	if rej.TransactionCode != "" {
		reason := &ClassifiedReason{
			Kind:            ReasonGeneric,
			TransactionCode: rej.TransactionCode,
			Message:         "the transaction was rejected with code " + rej.TransactionCode,
		}
		if len(rej.OperationCodes) > 0 {
			reason.OperationCode = rej.OperationCodes[0]
			reason.Message += " (" + rej.OperationCodes[0] + ")"
		}
		return reason
	}

	return nil
}
