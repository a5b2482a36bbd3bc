package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "stayhub/errors"
	"stayhub/models"
	"stayhub/repositories"
	"stayhub/services/logger"
	"stayhub/services/notification"
)

// RoomLineRequest is one requested room in a booking
type RoomLineRequest struct {
	RoomID    uint
	Occupancy int
}

// CreateReservationCommand carries everything needed to book a stay.
// AmountTotal/AmountTax, when set, are authoritative amounts already
// reconciled from a completed payment and override the computed sums.
type CreateReservationCommand struct {
	LodgingID   uint
	GuestID     *uint
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	CheckIn     time.Time
	CheckOut    time.Time
	Lines       []RoomLineRequest
	PaymentID   *uint
	AmountTotal *decimal.Decimal
	AmountTax   *decimal.Decimal
}

// BookingOrchestrator creates reservations as one atomic unit of work
type BookingOrchestrator struct {
	lodgings     repositories.LodgingCatalog
	rooms        repositories.RoomCatalog
	reservations repositories.ReservationStore
	payments     repositories.PaymentStore
	availability *AvailabilityChecker
	tx           repositories.TxManager
	notifier     *notification.Notifier
	log          logger.Logger
}

func NewBookingOrchestrator(
	lodgings repositories.LodgingCatalog,
	rooms repositories.RoomCatalog,
	reservations repositories.ReservationStore,
	payments repositories.PaymentStore,
	availability *AvailabilityChecker,
	tx repositories.TxManager,
	notifier *notification.Notifier,
	log logger.Logger,
) *BookingOrchestrator {
	return &BookingOrchestrator{
		lodgings:     lodgings,
		rooms:        rooms,
		reservations: reservations,
		payments:     payments,
		availability: availability,
		tx:           tx,
		notifier:     notifier,
		log:          log,
	}
}

// ReconcileInitialState derives the initial reservation state from the
// state of an already-existing payment at creation time.
func ReconcileInitialState(paymentState models.PaymentState) models.ReservationState {
	switch paymentState {
	case models.PaymentApproved:
		return models.ReservationConfirmed
	case models.PaymentPending, models.PaymentProcessing:
		return models.ReservationPendingPayment
	default:
		return models.ReservationCreated
	}
}

// CreateReservation books the requested rooms, all-or-nothing.
// Steps 1-5 (lodging check, availability, state reconciliation,
// persistence, totals) run in one transaction; the created notification
// is dispatched afterwards and can never roll them back.
func (o *BookingOrchestrator) CreateReservation(ctx context.Context, cmd CreateReservationCommand) (*models.Reservation, error) {
	checkIn := Midnight(cmd.CheckIn)
	checkOut := Midnight(cmd.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidDate,
			"check-out date must be after check-in date", apperrors.ErrInvalidInput)
	}
	if len(cmd.Lines) == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
			"at least one room is required", apperrors.ErrMissingRequired)
	}

	var reservation *models.Reservation
	var attachedPayment *models.Payment

	err := o.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := o.lodgings.Exists(txCtx, cmd.LodgingID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewAppError(apperrors.ErrCodeLodgingNotFound,
				fmt.Sprintf("lodging %d does not exist", cmd.LodgingID), apperrors.ErrLodgingNotFound)
		}

		roomIDs := make([]uint, 0, len(cmd.Lines))
		for _, line := range cmd.Lines {
			roomIDs = append(roomIDs, line.RoomID)
		}

		// Row-lock the room catalog entries before re-checking
		// availability: two concurrent bookings for the same room
		// serialize on these locks instead of both observing "free".
		rooms, err := o.rooms.GetRoomsForUpdate(txCtx, roomIDs)
		if err != nil {
			return err
		}
		roomsByID := make(map[uint]models.Room, len(rooms))
		for _, room := range rooms {
			if room.LodgingID != cmd.LodgingID {
				return apperrors.NewAppError(apperrors.ErrCodeValidation,
					fmt.Sprintf("room %d does not belong to lodging %d", room.RoomID, cmd.LodgingID),
					apperrors.ErrInvalidInput)
			}
			roomsByID[room.RoomID] = room
		}
		for _, id := range roomIDs {
			if _, ok := roomsByID[id]; !ok {
				return apperrors.NewAppError(apperrors.ErrCodeRoomNotFound,
					fmt.Sprintf("room %d does not exist", id), apperrors.ErrRoomNotFound)
			}
		}

		available, err := o.availability.AreAvailable(txCtx, roomIDs, checkIn, checkOut)
		if err != nil {
			return err
		}
		for _, id := range roomIDs {
			if !available[id] {
				return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable,
					fmt.Sprintf("room %d is not available for the requested dates", id),
					apperrors.ErrRoomUnavailable)
			}
		}

		initialState := models.ReservationCreated
		if cmd.PaymentID != nil {
			payment, err := o.payments.LoadForUpdate(txCtx, *cmd.PaymentID)
			if err != nil {
				return err
			}
			initialState = ReconcileInitialState(payment.Status)
			attachedPayment = payment
		}

		reservation = &models.Reservation{
			LodgingID:    cmd.LodgingID,
			GuestID:      cmd.GuestID,
			GuestName:    cmd.GuestName,
			GuestEmail:   cmd.GuestEmail,
			GuestPhone:   cmd.GuestPhone,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			Status:       initialState,
		}

		// The line snapshot is the first night's price times occupancy,
		// the per-stay contribution used for totals. The full per-night
		// calendar price stays a display concern served by BuildQuote.
		subtotal := decimal.Zero
		for _, line := range cmd.Lines {
			room := roomsByID[line.RoomID]
			occupancy := line.Occupancy
			if occupancy < 1 {
				occupancy = 1
			}
			nightly := PriceForNight(room.PricingProfile(), checkIn)
			final := nightly.Mul(decimal.NewFromInt(int64(occupancy))).Round(2)
			reservation.Lines = append(reservation.Lines, models.RoomLine{
				RoomID:             line.RoomID,
				BasePriceAtBooking: nightly,
				Occupancy:          occupancy,
				FinalPrice:         final,
			})
			subtotal = subtotal.Add(final)
		}

		if cmd.AmountTotal != nil && cmd.AmountTax != nil {
			reservation.TotalAmount = *cmd.AmountTotal
			reservation.TaxAmount = *cmd.AmountTax
		} else {
			reservation.TaxAmount = subtotal.Mul(TaxRate).Round(2)
			reservation.TotalAmount = subtotal.Add(reservation.TaxAmount)
		}

		if err := o.reservations.Save(txCtx, reservation); err != nil {
			return err
		}

		if attachedPayment != nil && attachedPayment.ReservationID == nil {
			attachedPayment.ReservationID = &reservation.ID
			if err := o.payments.Save(txCtx, attachedPayment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.notifyCreated(ctx, reservation)
	return reservation, nil
}

// notifyCreated emits the created events to guest and lodging owner,
// best-effort and outside the transaction
func (o *BookingOrchestrator) notifyCreated(ctx context.Context, r *models.Reservation) {
	payload := map[string]interface{}{
		"reservationId": r.ID,
		"checkInDate":   r.CheckInDate,
		"checkOutDate":  r.CheckOutDate,
		"totalAmount":   r.TotalAmount,
	}
	if r.GuestID != nil {
		o.notifier.Notify(notification.EventReservationCreated, *r.GuestID, payload)
	}
	lodging, err := o.lodgings.Load(ctx, r.LodgingID)
	if err != nil {
		o.log.Error("cannot load lodging %d for owner notification: %v", r.LodgingID, err)
		return
	}
	o.notifier.Notify(notification.EventReservationCreated, lodging.OwnerID, payload)
}
