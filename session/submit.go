package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/tx"
	"github.com/nacorid/stellarpay/validation"
)

// SubmitPayment runs one payment attempt end to end: fresh account load,
// envelope build, provider signing, network verification, submission, and
// a best-effort balance refresh.
//
// Local guard failures (another action in flight, not connected, invalid
// intent) and pre-signing failures return an error and no outcome. Once
// the provider is asked to sign, the result is always a SubmissionOutcome:
// Confirmed, Rejected, or ProviderDeclined. The prior balance is left
// untouched unless the payment was confirmed.
func (m *Manager) SubmitPayment(ctx context.Context, intent stellarpay.PaymentIntent) (*stellarpay.SubmissionOutcome, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	m.mu.Lock()
	state, provider, address := m.state, m.provider, m.address
	m.mu.Unlock()

	if state != stellarpay.StateConnected || provider == nil {
		return nil, stellarpay.ErrNotConnected
	}
	if err := validation.ValidateIntent(intent); err != nil {
		return nil, err
	}

	attemptID := uuid.NewString()
	start := m.policy.Now()
	m.emit(stellarpay.SessionEvent{
		Type:        stellarpay.SessionEventAttempt,
		ID:          attemptID,
		Timestamp:   start,
		Address:     address,
		Destination: intent.Destination,
		Amount:      intent.Amount,
	})

	outcome, err := m.runPipeline(ctx, provider, address, intent)
	if err != nil {
		m.emit(stellarpay.SessionEvent{
			Type:        stellarpay.SessionEventFailure,
			ID:          attemptID,
			Timestamp:   m.policy.Now(),
			Address:     address,
			Destination: intent.Destination,
			Amount:      intent.Amount,
			Error:       err,
			Duration:    time.Since(start),
		})
		return nil, err
	}

	m.mu.Lock()
	m.lastOutcome = outcome
	m.mu.Unlock()

	event := stellarpay.SessionEvent{
		ID:          attemptID,
		Timestamp:   m.policy.Now(),
		Address:     address,
		Destination: intent.Destination,
		Amount:      intent.Amount,
		Outcome:     outcome,
		Duration:    time.Since(start),
	}
	if outcome.Kind == stellarpay.OutcomeConfirmed {
		event.Type = stellarpay.SessionEventSuccess
		event.TransactionID = outcome.TransactionID
	} else {
		event.Type = stellarpay.SessionEventFailure
	}
	m.emit(event)

	return outcome, nil
}

// runPipeline executes the submission sequence for a connected session.
// The in-flight token is already held.
func (m *Manager) runPipeline(ctx context.Context, provider stellarpay.WalletProvider, address string, intent stellarpay.PaymentIntent) (*stellarpay.SubmissionOutcome, error) {
	// A snapshot feeds exactly one build; never reuse one across attempts.
	snapshot, err := m.gateway.LoadAccount(ctx, address)
	if err != nil {
		return nil, stellarpay.NewSessionError(stellarpay.ErrCodeGateway, "failed to load account", err)
	}

	envelope, err := tx.Build(snapshot, intent, m.policy)
	if err != nil {
		return nil, stellarpay.NewSessionError(stellarpay.ErrCodeValidation, "failed to build transaction", err)
	}

	signed, err := provider.SignTransaction(ctx, envelope, m.policy.NetworkPassphrase)
	if err != nil {
		m.log.Info("wallet declined to sign", "wallet", provider.Name(), "err", err)
		return &stellarpay.SubmissionOutcome{
			Kind:    stellarpay.OutcomeProviderDeclined,
			Message: declineMessage(err),
		}, nil
	}

	// The provider's output is opaque; the only inspection allowed is the
	// network gate. A mismatched envelope is fatal and never sent.
	if err := tx.VerifySigned(signed, address, m.policy.NetworkPassphrase); err != nil {
		m.log.Warn("signed envelope failed network verification", "wallet", provider.Name(), "err", err)
		return &stellarpay.SubmissionOutcome{
			Kind:    stellarpay.OutcomeProviderDeclined,
			Message: "the wallet returned an envelope that does not verify for this network",
		}, nil
	}

	result, err := m.gateway.SubmitTransaction(ctx, signed)
	if err != nil {
		return m.rejectedOutcome(err), nil
	}

	outcome := &stellarpay.SubmissionOutcome{
		Kind:          stellarpay.OutcomeConfirmed,
		TransactionID: result.TransactionID,
		Message:       "payment confirmed in transaction " + result.TransactionID,
	}

	// Best-effort refresh. A failure here leaves the balance display stale
	// but never demotes a confirmed payment; it is reported on its own.
	if refreshed, err := m.gateway.LoadAccount(ctx, address); err != nil {
		m.log.Warn("balance refresh after submit failed", "address", address, "err", err)
		outcome.RefreshErr = err
	} else {
		m.mu.Lock()
		m.balance = refreshed.NativeBalance()
		m.mu.Unlock()
	}

	return outcome, nil
}

// rejectedOutcome turns a gateway submission failure into a Rejected
// outcome, classified when the failure carried structured result codes.
func (m *Manager) rejectedOutcome(err error) *stellarpay.SubmissionOutcome {
	if reason := stellarpay.Classify(err); reason != nil {
		return &stellarpay.SubmissionOutcome{
			Kind:    stellarpay.OutcomeRejected,
			Reason:  reason,
			Message: reason.Message,
		}
	}
	if errors.Is(err, stellarpay.ErrGatewayUnreachable) {
		return &stellarpay.SubmissionOutcome{
			Kind:    stellarpay.OutcomeRejected,
			Message: "the gateway could not be reached; try again",
		}
	}
	return &stellarpay.SubmissionOutcome{
		Kind:    stellarpay.OutcomeRejected,
		Message: "the transaction was not accepted: " + err.Error(),
	}
}

// declineMessage keeps user-cancelled declines quiet and surfaces the rest.
func declineMessage(err error) string {
	if errors.Is(err, stellarpay.ErrProviderDeclined) {
		return "the wallet declined the request"
	}
	return "the wallet could not sign the transaction: " + err.Error()
}

// emit dispatches a session event to the matching callback, if set.
func (m *Manager) emit(event stellarpay.SessionEvent) {
	var cb stellarpay.SessionCallback
	switch event.Type {
	case stellarpay.SessionEventAttempt:
		cb = m.onAttempt
	case stellarpay.SessionEventSuccess:
		cb = m.onSuccess
	case stellarpay.SessionEventFailure:
		cb = m.onFailure
	}
	if cb != nil {
		cb(event)
	}
}
