package repositories

import (
	"context"
	"time"

	"stayhub/models"
)

// The orchestrator and state-machine shells depend on these narrow
// interfaces rather than on concrete repositories, so the pure logic
// can be tested against in-memory fakes and the package graph stays
// acyclic.

// ReservationReader is the read-only port the availability checker uses
type ReservationReader interface {
	// FindOverlapping returns the set of room ids that have at least one
	// reservation in a blocking state intersecting the half-open interval
	// [from, to). Must execute as a single set query.
	FindOverlapping(ctx context.Context, roomIDs []uint, from, to time.Time, blocking []models.ReservationState) (map[uint]bool, error)
}

// ReservationStore extends the reader with persistence
type ReservationStore interface {
	ReservationReader
	Save(ctx context.Context, r *models.Reservation) error
	Load(ctx context.Context, id uint) (*models.Reservation, error)
	// LoadForUpdate row-locks the reservation so concurrent transitions
	// on the same entity serialize.
	LoadForUpdate(ctx context.Context, id uint) (*models.Reservation, error)
}

// PaymentStore persists payments
type PaymentStore interface {
	Load(ctx context.Context, id uint) (*models.Payment, error)
	LoadForUpdate(ctx context.Context, id uint) (*models.Payment, error)
	Save(ctx context.Context, p *models.Payment) error
	// FindStale returns payments sitting in state since before cutoff
	FindStale(ctx context.Context, state models.PaymentState, cutoff time.Time) ([]models.Payment, error)
}

// RoomCatalog is the read-only room port
type RoomCatalog interface {
	GetPricingProfile(ctx context.Context, roomID uint) (models.PricingProfile, error)
	// GetRoomsForUpdate row-locks the catalog rows; taken before the
	// availability re-check so two bookings for the same room serialize.
	GetRoomsForUpdate(ctx context.Context, roomIDs []uint) ([]models.Room, error)
	Exists(ctx context.Context, roomID uint) (bool, error)
}

// LodgingCatalog is the read-only lodging port
type LodgingCatalog interface {
	Exists(ctx context.Context, lodgingID uint) (bool, error)
	Load(ctx context.Context, lodgingID uint) (*models.Lodging, error)
}

// CardStore reads stored card records for the synchronous processor
type CardStore interface {
	Load(ctx context.Context, id uint) (*models.Card, error)
}

// TxManager runs a function inside one database transaction.
// The context passed to fn carries the transaction handle.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
