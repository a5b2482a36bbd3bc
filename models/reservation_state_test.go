package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stayhub/errors"
)

var allReservationStates = []ReservationState{
	ReservationCreated,
	ReservationPendingPayment,
	ReservationConfirmed,
	ReservationPaid,
	ReservationCheckedIn,
	ReservationCheckedOut,
	ReservationClosed,
	ReservationCancelled,
}

func TestReservationTransitionTable(t *testing.T) {
	allowed := map[ReservationState][]ReservationState{
		ReservationCreated:        {ReservationPendingPayment, ReservationCancelled},
		ReservationPendingPayment: {ReservationPaid, ReservationCancelled},
		ReservationConfirmed:      {ReservationCheckedIn, ReservationCancelled},
		ReservationPaid:           {ReservationCheckedIn, ReservationCancelled},
		ReservationCheckedIn:      {ReservationCheckedOut},
		ReservationCheckedOut:     {ReservationClosed},
		ReservationClosed:         {},
		ReservationCancelled:      {},
	}
	for _, from := range allReservationStates {
		allowedSet := map[ReservationState]bool{}
		for _, to := range allowed[from] {
			allowedSet[to] = true
		}
		for _, to := range allReservationStates {
			assert.Equal(t, allowedSet[to], CanTransitionReservation(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestReservationTerminalStates(t *testing.T) {
	for _, s := range allReservationStates {
		want := s == ReservationCancelled || s == ReservationClosed
		assert.Equal(t, want, s.IsTerminal(), "state %s", s)
	}
}

func TestApplyReservationTransition(t *testing.T) {
	r := &Reservation{Status: ReservationCreated}

	require.NoError(t, ApplyReservationTransition(r, ReservationPendingPayment))
	assert.Equal(t, ReservationPendingPayment, r.Status)

	require.NoError(t, ApplyReservationTransition(r, ReservationPaid))
	require.NoError(t, ApplyReservationTransition(r, ReservationCheckedIn))
	require.NoError(t, ApplyReservationTransition(r, ReservationCheckedOut))
	require.NoError(t, ApplyReservationTransition(r, ReservationClosed))
	assert.Equal(t, ReservationClosed, r.Status)
}

func TestApplyReservationTransitionRejected(t *testing.T) {
	r := &Reservation{Status: ReservationCancelled}

	err := ApplyReservationTransition(r, ReservationPaid)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))
	// state untouched on failure
	assert.Equal(t, ReservationCancelled, r.Status)
}
