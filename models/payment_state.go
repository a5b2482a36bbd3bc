package models

import (
	"fmt"
	"time"

	apperrors "stayhub/errors"
)

// paymentTransitions is the full payment lifecycle table.
// CANCELLED and REFUNDED have no entries: they are terminal.
// REJECTED, EXPIRED and FAILED can be retried back to PENDING manually.
var paymentTransitions = map[PaymentState][]PaymentState{
	PaymentPending:    {PaymentProcessing, PaymentCancelled, PaymentExpired},
	PaymentProcessing: {PaymentApproved, PaymentRejected, PaymentFailed},
	PaymentApproved:   {PaymentCancelled, PaymentRefunded},
	PaymentRejected:   {PaymentPending},
	PaymentExpired:    {PaymentPending},
	PaymentFailed:     {PaymentPending},
}

// CanTransitionPayment reports whether from -> to is in the table
func CanTransitionPayment(from, to PaymentState) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplyPaymentTransition is the only payment state mutator.
// Entering APPROVED stamps PaidAt.
func ApplyPaymentTransition(p *Payment, target PaymentState) error {
	if !CanTransitionPayment(p.Status, target) {
		return apperrors.NewAppError(
			apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("payment %d cannot move from %s to %s", p.ID, p.Status, target),
			apperrors.ErrInvalidTransition,
		)
	}
	p.Status = target
	now := time.Now()
	p.UpdatedAt = now
	if target == PaymentApproved {
		p.PaidAt = &now
	}
	return nil
}

// EnsureAmountImmutable rejects a write that changes AmountTotal after
// the payment reached APPROVED. Every persistence path runs this before
// overwriting a stored payment.
func EnsureAmountImmutable(stored, updated *Payment) error {
	if stored.Status == PaymentApproved && !stored.AmountTotal.Equal(updated.AmountTotal) {
		return apperrors.NewAppError(
			apperrors.ErrCodeInvalidAmount,
			fmt.Sprintf("payment %d amount cannot change after approval", stored.ID),
			apperrors.ErrAmountImmutable,
		)
	}
	return nil
}

// ReservationCommand is the reservation move a payment transition implies.
// SkipIfTerminal marks commands that quietly stand down when the
// reservation already reached a terminal state.
type ReservationCommand struct {
	Target         ReservationState
	SkipIfTerminal bool
}

// OnPaymentTransition maps a payment transition to the reservation
// command it implies. Pure: no I/O, no mutation. Returns nil when the
// payment has no reservation attached or the new state drives nothing.
//
//	APPROVED            -> PAID
//	EXPIRED, CANCELLED  -> CANCELLED (unless the reservation is terminal)
func OnPaymentTransition(p *Payment, newState PaymentState) *ReservationCommand {
	if p.ReservationID == nil {
		return nil
	}
	switch newState {
	case PaymentApproved:
		return &ReservationCommand{Target: ReservationPaid}
	case PaymentExpired, PaymentCancelled:
		return &ReservationCommand{Target: ReservationCancelled, SkipIfTerminal: true}
	default:
		return nil
	}
}
