package tx

import (
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	"github.com/nacorid/stellarpay"
)

// VerifySigned decodes a signed envelope and checks that it carries a valid
// source-account signature for the expected network passphrase.
//
// The transaction hash mixes in the passphrase, so a signature produced for
// any other network fails verification deterministically. This is the
// pre-submission gate against a provider returning an envelope signed for
// the wrong network: a mismatch wraps stellarpay.ErrNetworkMismatch and the
// envelope must not be sent.
func VerifySigned(envelopeXDR, sourceAddress, networkPassphrase string) error {
	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return fmt.Errorf("failed to decode envelope: %w", err)
	}
	signed, ok := generic.Transaction()
	if !ok {
		return fmt.Errorf("envelope is not a simple transaction")
	}

	signatures := signed.Signatures()
	if len(signatures) == 0 {
		return fmt.Errorf("envelope carries no signatures")
	}

	hash, err := signed.Hash(networkPassphrase)
	if err != nil {
		return fmt.Errorf("failed to hash transaction: %w", err)
	}

	source, err := keypair.ParseAddress(sourceAddress)
	if err != nil {
		return fmt.Errorf("failed to parse source address: %w", err)
	}

	hint := source.Hint()
	for _, sig := range signatures {
		if [4]byte(sig.Hint) != hint {
			continue
		}
		if err := source.Verify(hash[:], sig.Signature); err == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: no signature by %s verifies for the expected passphrase",
		stellarpay.ErrNetworkMismatch, sourceAddress)
}
