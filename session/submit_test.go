package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/wallet/local"
)

// connectedManager builds a manager connected to a funded fake account.
func connectedManager(t *testing.T, opts ...Option) (*Manager, *fakeGateway, *keypair.Full) {
	t.Helper()
	kp := keypair.MustRandom()
	gateway := newFakeGateway()
	gateway.setAccount(kp.Address(), "100.0000000", 100)
	mgr := newTestManager(t, gateway, newLocalWallet(t, kp), opts...)
	if _, err := mgr.Connect(context.Background(), "local"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return mgr, gateway, kp
}

// deductOnSubmit makes the fake gateway confirm submissions and settle them
// against the stored account: balance reduced, sequence consumed.
func deductOnSubmit(gateway *fakeGateway, address, amount string) {
	gateway.submitFn = func(envelopeXDR string) (*stellarpay.SubmitResult, error) {
		gateway.mu.Lock()
		defer gateway.mu.Unlock()
		account := gateway.accounts[address]
		balance := decimal.RequireFromString(account.Balances[0].Amount)
		account.Balances[0].Amount = balance.Sub(decimal.RequireFromString(amount)).String()
		account.Sequence++
		return &stellarpay.SubmitResult{TransactionID: "fake-tx-hash", Ledger: 1}, nil
	}
}

func assertBalanceEquals(t *testing.T, got, want string) {
	t.Helper()
	if !decimal.RequireFromString(got).Equal(decimal.RequireFromString(want)) {
		t.Errorf("balance = %s; want %s", got, want)
	}
}

func TestSubmitPaymentConfirmed(t *testing.T) {
	var events []stellarpay.SessionEvent
	record := func(e stellarpay.SessionEvent) { events = append(events, e) }

	mgr, gateway, kp := connectedManager(t, WithCallbacks(record, record, record))
	deductOnSubmit(gateway, kp.Address(), "10")

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeConfirmed {
		t.Fatalf("Kind = %s; want confirmed (%s)", outcome.Kind, outcome.Message)
	}
	if outcome.TransactionID != "fake-tx-hash" {
		t.Errorf("TransactionID = %s; want fake-tx-hash", outcome.TransactionID)
	}
	if outcome.RefreshErr != nil {
		t.Errorf("RefreshErr = %v; want nil", outcome.RefreshErr)
	}

	state := mgr.State()
	assertBalanceEquals(t, state.Balance, "90")
	if state.LastOutcome != outcome {
		t.Error("LastOutcome should be the returned outcome")
	}

	if len(events) != 2 {
		t.Fatalf("events = %d; want attempt and success", len(events))
	}
	if events[0].Type != stellarpay.SessionEventAttempt || events[1].Type != stellarpay.SessionEventSuccess {
		t.Errorf("event types = %s, %s; want attempt, success", events[0].Type, events[1].Type)
	}
	if events[0].ID == "" || events[0].ID != events[1].ID {
		t.Errorf("attempt and success should share a correlation id, got %q and %q", events[0].ID, events[1].ID)
	}
	if events[1].TransactionID != "fake-tx-hash" {
		t.Errorf("success event TransactionID = %s; want fake-tx-hash", events[1].TransactionID)
	}
}

func TestSubmitPaymentDestinationNotFunded(t *testing.T) {
	mgr, gateway, _ := connectedManager(t)
	gateway.submitFn = func(envelopeXDR string) (*stellarpay.SubmitResult, error) {
		return nil, &stellarpay.RejectionError{
			TransactionCode: "tx_failed",
			OperationCodes:  []string{"op_no_destination"},
		}
	}

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeRejected {
		t.Fatalf("Kind = %s; want rejected", outcome.Kind)
	}
	if outcome.Reason == nil || outcome.Reason.Kind != stellarpay.ReasonDestinationNotFunded {
		t.Fatalf("Reason = %+v; want destination_not_funded", outcome.Reason)
	}

	assertBalanceEquals(t, mgr.State().Balance, "100")
}

func TestSubmitPaymentMutualExclusion(t *testing.T) {
	kp := keypair.MustRandom()
	gateway := newFakeGateway()
	gateway.setAccount(kp.Address(), "100.0000000", 100)

	gated := &gatedProvider{
		WalletProvider: newLocalWallet(t, kp),
		signEntered:    make(chan struct{}),
		signRelease:    make(chan struct{}),
	}
	mgr := newTestManager(t, gateway, gated)
	if _, err := mgr.Connect(context.Background(), "local"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	intent := stellarpay.PaymentIntent{Destination: keypair.MustRandom().Address(), Amount: "10"}

	firstDone := make(chan error, 1)
	go func() {
		_, err := mgr.SubmitPayment(context.Background(), intent)
		firstDone <- err
	}()

	<-gated.signEntered

	// Second submit while the first awaits provider approval: rejected
	// locally, the gateway never sees it.
	if _, err := mgr.SubmitPayment(context.Background(), intent); !errors.Is(err, stellarpay.ErrActionInFlight) {
		t.Errorf("Expected ErrActionInFlight, got %v", err)
	}
	if _, submits := gateway.counts(); submits != 0 {
		t.Errorf("gateway submit calls = %d; want 0 while first attempt is pending", submits)
	}

	close(gated.signRelease)
	if err := <-firstDone; err != nil {
		t.Fatalf("first SubmitPayment failed: %v", err)
	}
	if _, submits := gateway.counts(); submits != 1 {
		t.Errorf("gateway submit calls = %d; want exactly 1", submits)
	}
}

func TestSubmitPaymentProviderDeclined(t *testing.T) {
	kp := keypair.MustRandom()
	gateway := newFakeGateway()
	gateway.setAccount(kp.Address(), "100.0000000", 100)

	mgr := newTestManager(t, gateway, &decliningProvider{WalletProvider: newLocalWallet(t, kp)})
	if _, err := mgr.Connect(context.Background(), "local"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeProviderDeclined {
		t.Fatalf("Kind = %s; want provider_declined", outcome.Kind)
	}
	if _, submits := gateway.counts(); submits != 0 {
		t.Errorf("gateway submit calls = %d; want 0 after a decline", submits)
	}
	assertBalanceEquals(t, mgr.State().Balance, "100")
}

func TestSubmitPaymentWrongNetworkSignature(t *testing.T) {
	kp := keypair.MustRandom()
	gateway := newFakeGateway()
	gateway.setAccount(kp.Address(), "100.0000000", 100)

	// A provider that ignores the requested passphrase and signs for the
	// public network instead.
	rogue, err := local.New(kp.Seed(), stellarpay.PublicPassphrase)
	if err != nil {
		t.Fatalf("local.New failed: %v", err)
	}
	mgr := newTestManager(t, gateway, &wrongNetworkProvider{inner: rogue})
	if _, err := mgr.Connect(context.Background(), "local"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeProviderDeclined {
		t.Fatalf("Kind = %s; want provider_declined for a cross-network envelope", outcome.Kind)
	}
	if _, submits := gateway.counts(); submits != 0 {
		t.Errorf("gateway submit calls = %d; a mismatched envelope must never be sent", submits)
	}
}

func TestSubmitPaymentNotConnected(t *testing.T) {
	kp := keypair.MustRandom()
	mgr := newTestManager(t, newFakeGateway(), newLocalWallet(t, kp))

	_, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if !errors.Is(err, stellarpay.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}

func TestSubmitPaymentInvalidIntent(t *testing.T) {
	mgr, gateway, _ := connectedManager(t)
	loadsBefore, _ := gateway.counts()

	_, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "-5",
	})
	if !errors.Is(err, stellarpay.ErrInvalidIntent) {
		t.Fatalf("Expected ErrInvalidIntent, got %v", err)
	}

	loadsAfter, submits := gateway.counts()
	if loadsAfter != loadsBefore || submits != 0 {
		t.Error("an invalid intent must not reach the gateway")
	}
}

func TestSubmitPaymentRefreshFailureStaysConfirmed(t *testing.T) {
	mgr, gateway, kp := connectedManager(t)
	deductOnSubmit(gateway, kp.Address(), "10")
	// Loads: 1 connect, 2 pipeline snapshot; the refresh is the third.
	gateway.failLoadAt = 3

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeConfirmed {
		t.Fatalf("Kind = %s; a refresh failure must not demote a confirmed payment", outcome.Kind)
	}
	if outcome.RefreshErr == nil {
		t.Error("RefreshErr should report the failed refresh")
	}
	// The display balance is stale but intact.
	assertBalanceEquals(t, mgr.State().Balance, "100")
}

func TestSubmitPaymentGatewayUnreachable(t *testing.T) {
	mgr, gateway, _ := connectedManager(t)
	gateway.submitFn = func(envelopeXDR string) (*stellarpay.SubmitResult, error) {
		return nil, fmt.Errorf("%w: connection refused", stellarpay.ErrGatewayUnreachable)
	}

	outcome, err := mgr.SubmitPayment(context.Background(), stellarpay.PaymentIntent{
		Destination: keypair.MustRandom().Address(),
		Amount:      "10",
	})
	if err != nil {
		t.Fatalf("SubmitPayment failed: %v", err)
	}

	if outcome.Kind != stellarpay.OutcomeRejected {
		t.Fatalf("Kind = %s; want rejected", outcome.Kind)
	}
	if outcome.Reason != nil {
		t.Errorf("Reason = %+v; connectivity failures carry no classified reason", outcome.Reason)
	}
	assertBalanceEquals(t, mgr.State().Balance, "100")
}

func TestSubmitPaymentUsesFreshSequence(t *testing.T) {
	mgr, gateway, kp := connectedManager(t)
	var envelopes []string
	gateway.submitFn = func(envelopeXDR string) (*stellarpay.SubmitResult, error) {
		gateway.mu.Lock()
		defer gateway.mu.Unlock()
		envelopes = append(envelopes, envelopeXDR)
		gateway.accounts[kp.Address()].Sequence++
		return &stellarpay.SubmitResult{TransactionID: "fake-tx-hash", Ledger: 1}, nil
	}

	intent := stellarpay.PaymentIntent{Destination: keypair.MustRandom().Address(), Amount: "1"}
	for i := 0; i < 2; i++ {
		if _, err := mgr.SubmitPayment(context.Background(), intent); err != nil {
			t.Fatalf("SubmitPayment %d failed: %v", i, err)
		}
	}

	if len(envelopes) != 2 {
		t.Fatalf("envelopes = %d; want 2", len(envelopes))
	}
	first := envelopeSequence(t, envelopes[0])
	second := envelopeSequence(t, envelopes[1])
	if second != first+1 {
		t.Errorf("second attempt sequence = %d; want %d (fresh snapshot per attempt)", second, first+1)
	}
}

func envelopeSequence(t *testing.T, envelopeXDR string) int64 {
	t.Helper()
	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	decoded, ok := generic.Transaction()
	if !ok {
		t.Fatal("envelope is not a simple transaction")
	}
	return decoded.SourceAccount().Sequence
}

// decliningProvider refuses every signing request, like a user dismissing
// the provider UI.
type decliningProvider struct {
	stellarpay.WalletProvider
}

func (p *decliningProvider) SignTransaction(ctx context.Context, envelopeXDR, networkPassphrase string) (string, error) {
	return "", fmt.Errorf("%w: user dismissed the signing prompt", stellarpay.ErrProviderDeclined)
}

// wrongNetworkProvider signs for its own network regardless of the
// requested passphrase.
type wrongNetworkProvider struct {
	inner *local.Wallet
}

func (p *wrongNetworkProvider) Name() string { return p.inner.Name() }

func (p *wrongNetworkProvider) Address(ctx context.Context) (string, error) {
	return p.inner.Address(ctx)
}

func (p *wrongNetworkProvider) SignTransaction(ctx context.Context, envelopeXDR, networkPassphrase string) (string, error) {
	return p.inner.SignTransaction(ctx, envelopeXDR, stellarpay.PublicPassphrase)
}

func (p *wrongNetworkProvider) Disconnect(ctx context.Context) error {
	return p.inner.Disconnect(ctx)
}
