package stellarpay

import (
	"fmt"
	"time"
)

// maxMemoTextBytes is the ledger's limit for text memos.
const maxMemoTextBytes = 28

// Policy holds the fixed transaction construction parameters. The values
// are construction constants, not user input: every payment built by this
// library carries the same fee, memo, and validity window.
type Policy struct {
	// NetworkPassphrase identifies the target network. Build, sign, and
	// submit all validate against it.
	NetworkPassphrase string

	// BaseFee is the per-operation fee in stroops.
	BaseFee int64

	// MemoText is the text memo attached to every transaction.
	MemoText string

	// TimeoutSeconds bounds how long an envelope stays valid after build
	// time. The ledger rejects the transaction past the deadline, so a
	// signed-but-unsubmitted envelope cannot be replayed much later.
	TimeoutSeconds int64

	// Clock supplies build time. Nil means time.Now; tests inject a fixed
	// clock to get byte-identical envelopes.
	Clock func() time.Time
}

// DefaultTestnetPolicy is the construction policy for the test network.
var DefaultTestnetPolicy = Policy{
	NetworkPassphrase: TestnetPassphrase,
	BaseFee:           100,
	MemoText:          "stellarpay",
	TimeoutSeconds:    300,
}

// Now returns the policy's current time.
func (p Policy) Now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

// WithClock returns a copy of the policy using the given clock.
func (p Policy) WithClock(clock func() time.Time) Policy {
	p.Clock = clock
	return p
}

// WithTimeout returns a copy of the policy with an updated validity window.
func (p Policy) WithTimeout(seconds int64) Policy {
	p.TimeoutSeconds = seconds
	return p
}

// Validate ensures the policy values are usable.
func (p Policy) Validate() error {
	if p.NetworkPassphrase == "" {
		return fmt.Errorf("network passphrase must not be empty")
	}
	if p.BaseFee <= 0 {
		return fmt.Errorf("base fee must be positive, got %d", p.BaseFee)
	}
	if p.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", p.TimeoutSeconds)
	}
	if len(p.MemoText) > maxMemoTextBytes {
		return fmt.Errorf("memo text exceeds %d bytes", maxMemoTextBytes)
	}
	return nil
}
