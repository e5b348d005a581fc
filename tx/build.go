// Package tx builds unsigned payment envelopes and verifies signed ones
// against the expected network.
package tx

import (
	"fmt"

	"github.com/stellar/go/txnbuild"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/validation"
)

// Build assembles an unsigned single-payment envelope from one account
// snapshot and one payment intent, returning the base64 envelope encoding.
//
// Construction is fixed by the policy: one native-asset payment operation,
// the policy's base fee and memo, and a validity window of
// policy.TimeoutSeconds from the policy clock's current time. Given the
// same snapshot, intent, and clock reading, the result is byte-identical.
//
// The snapshot's sequence number is consumed by whatever happens to the
// envelope next; callers must fetch a fresh snapshot for every build.
func Build(snapshot *stellarpay.AccountSnapshot, intent stellarpay.PaymentIntent, policy stellarpay.Policy) (string, error) {
	if snapshot == nil {
		return "", fmt.Errorf("snapshot cannot be nil")
	}
	if err := validation.ValidateIntent(intent); err != nil {
		return "", err
	}
	if err := policy.Validate(); err != nil {
		return "", fmt.Errorf("invalid policy: %w", err)
	}

	deadline := policy.Now().Unix() + policy.TimeoutSeconds

	built, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: snapshot.Address,
			Sequence:  snapshot.Sequence,
		},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: intent.Destination,
				Amount:      intent.Amount,
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee: policy.BaseFee,
		Memo:    txnbuild.MemoText(policy.MemoText),
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimebounds(0, deadline),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}

	envelope, err := built.Base64()
	if err != nil {
		return "", fmt.Errorf("failed to encode envelope: %w", err)
	}
	return envelope, nil
}
