package services

import (
	"context"
	"time"

	"stayhub/models"
	"stayhub/repositories"
)

// AvailabilityChecker answers whether rooms are free for a date range.
// It never retries; callers own retry policy.
type AvailabilityChecker struct {
	reservations repositories.ReservationReader
}

func NewAvailabilityChecker(reservations repositories.ReservationReader) *AvailabilityChecker {
	return &AvailabilityChecker{reservations: reservations}
}

// IsAvailable reports whether the room is free for [from, to).
// Both comparisons are strict, so a reservation checking out on day D
// never blocks a request checking in on day D.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, roomID uint, from, to time.Time) (bool, error) {
	result, err := c.AreAvailable(ctx, []uint{roomID}, from, to)
	if err != nil {
		return false, err
	}
	return result[roomID], nil
}

// AreAvailable is the batch form: one set query for the whole page of
// rooms, not one round trip per room.
func (c *AvailabilityChecker) AreAvailable(ctx context.Context, roomIDs []uint, from, to time.Time) (map[uint]bool, error) {
	occupied, err := c.reservations.FindOverlapping(ctx, roomIDs, Midnight(from), Midnight(to), models.BlockingStates)
	if err != nil {
		return nil, err
	}
	result := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		result[id] = !occupied[id]
	}
	return result, nil
}
