package models

import (
	"fmt"
	"time"

	apperrors "stayhub/errors"
)

// reservationTransitions is the full reservation lifecycle table.
// CANCELLED and CLOSED have no entries: they are terminal.
var reservationTransitions = map[ReservationState][]ReservationState{
	ReservationCreated:        {ReservationPendingPayment, ReservationCancelled},
	ReservationPendingPayment: {ReservationPaid, ReservationCancelled},
	ReservationPaid:           {ReservationCheckedIn, ReservationCancelled},
	ReservationConfirmed:      {ReservationCheckedIn, ReservationCancelled},
	ReservationCheckedIn:      {ReservationCheckedOut},
	ReservationCheckedOut:     {ReservationClosed},
}

// CanTransitionReservation reports whether from -> to is in the table
func CanTransitionReservation(from, to ReservationState) bool {
	for _, allowed := range reservationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplyReservationTransition is the only reservation state mutator.
// A move not present in the table fails; it never silently no-ops.
func ApplyReservationTransition(r *Reservation, target ReservationState) error {
	if !CanTransitionReservation(r.Status, target) {
		return apperrors.NewAppError(
			apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("reservation %d cannot move from %s to %s", r.ID, r.Status, target),
			apperrors.ErrInvalidTransition,
		)
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}
