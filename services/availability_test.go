package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stayhub/models"
)

func seedReservation(t *testing.T, store *memReservationStore, roomID uint, from, to time.Time, status models.ReservationState) {
	t.Helper()
	err := store.Save(context.Background(), &models.Reservation{
		LodgingID:    1,
		CheckInDate:  from,
		CheckOutDate: to,
		Status:       status,
		Lines:        []models.RoomLine{{RoomID: roomID, Occupancy: 1}},
	})
	require.NoError(t, err)
}

func TestIsAvailableCheckoutDayRelease(t *testing.T) {
	store := newMemReservationStore()
	checker := NewAvailabilityChecker(store)
	ctx := context.Background()

	// room X occupied [2025-07-10, 2025-07-14)
	seedReservation(t, store, 10, date(2025, time.July, 10), date(2025, time.July, 14), models.ReservationPaid)

	// starting on the checkout day is always accepted
	free, err := checker.IsAvailable(ctx, 10, date(2025, time.July, 14), date(2025, time.July, 16))
	require.NoError(t, err)
	require.True(t, free)

	// overlapping the last occupied night is not
	free, err = checker.IsAvailable(ctx, 10, date(2025, time.July, 13), date(2025, time.July, 16))
	require.NoError(t, err)
	require.False(t, free)

	// ending on the check-in day is fine too
	free, err = checker.IsAvailable(ctx, 10, date(2025, time.July, 8), date(2025, time.July, 10))
	require.NoError(t, err)
	require.True(t, free)
}

func TestIsAvailableDegenerateSameDayQuery(t *testing.T) {
	store := newMemReservationStore()
	checker := NewAvailabilityChecker(store)
	ctx := context.Background()

	seedReservation(t, store, 10, date(2025, time.July, 10), date(2025, time.July, 14), models.ReservationPaid)

	// [d, d) evaluated with the same strict inequalities
	free, err := checker.IsAvailable(ctx, 10, date(2025, time.July, 12), date(2025, time.July, 12))
	require.NoError(t, err)
	require.True(t, free)
}

func TestIsAvailableBlockingStatesOnly(t *testing.T) {
	store := newMemReservationStore()
	checker := NewAvailabilityChecker(store)
	ctx := context.Background()

	from := date(2025, time.July, 10)
	to := date(2025, time.July, 14)

	blocking := []models.ReservationState{
		models.ReservationCreated,
		models.ReservationConfirmed,
		models.ReservationPaid,
		models.ReservationCheckedIn,
		models.ReservationCheckedOut,
	}
	for i, status := range blocking {
		roomID := uint(100 + i)
		seedReservation(t, store, roomID, from, to, status)
		free, err := checker.IsAvailable(ctx, roomID, from, to)
		require.NoError(t, err)
		require.False(t, free, "state %s must block", status)
	}

	for i, status := range []models.ReservationState{
		models.ReservationPendingPayment,
		models.ReservationCancelled,
		models.ReservationClosed,
	} {
		roomID := uint(200 + i)
		seedReservation(t, store, roomID, from, to, status)
		free, err := checker.IsAvailable(ctx, roomID, from, to)
		require.NoError(t, err)
		require.True(t, free, "state %s must not block", status)
	}
}

func TestAreAvailableBatch(t *testing.T) {
	store := newMemReservationStore()
	checker := NewAvailabilityChecker(store)
	ctx := context.Background()

	seedReservation(t, store, 1, date(2025, time.July, 10), date(2025, time.July, 14), models.ReservationConfirmed)
	seedReservation(t, store, 3, date(2025, time.July, 12), date(2025, time.July, 13), models.ReservationCheckedIn)

	result, err := checker.AreAvailable(ctx, []uint{1, 2, 3}, date(2025, time.July, 11), date(2025, time.July, 13))
	require.NoError(t, err)
	require.Equal(t, map[uint]bool{1: false, 2: true, 3: false}, result)
}
