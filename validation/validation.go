// Package validation provides validation utilities for payment input.
// It validates account addresses (strkey shape) and native-asset amounts.
package validation

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/nacorid/stellarpay"
)

// accountAddressRegex matches ed25519 account strkeys: "G" followed by
// 55 base32 characters. Checksum validity is left to the transaction
// builder, which decodes the full strkey.
var accountAddressRegex = regexp.MustCompile(`^G[A-Z2-7]{55}$`)

// maxAmountPlaces is the ledger's native-asset precision (stroops).
const maxAmountPlaces = 7

// ValidateAddress validates an account address.
// Returns an error wrapping stellarpay.ErrInvalidIntent if the address is
// empty or not shaped like an account strkey.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: address cannot be empty", stellarpay.ErrInvalidIntent)
	}
	if !accountAddressRegex.MatchString(address) {
		return fmt.Errorf("%w: malformed address %q", stellarpay.ErrInvalidIntent, address)
	}
	return nil
}

// ValidateAmount validates a native-asset amount string: a positive decimal
// with at most seven decimal places.
func ValidateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("%w: amount cannot be empty", stellarpay.ErrInvalidIntent)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("%w: malformed amount %q", stellarpay.ErrInvalidIntent, amount)
	}
	if d.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %q", stellarpay.ErrInvalidIntent, amount)
	}
	if d.Exponent() < -maxAmountPlaces {
		return fmt.Errorf("%w: amount %q has more than %d decimal places",
			stellarpay.ErrInvalidIntent, amount, maxAmountPlaces)
	}
	return nil
}

// ValidateIntent validates a payment intent before transaction building.
func ValidateIntent(intent stellarpay.PaymentIntent) error {
	if err := ValidateAddress(intent.Destination); err != nil {
		return err
	}
	return ValidateAmount(intent.Amount)
}
