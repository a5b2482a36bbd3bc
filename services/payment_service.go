package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "stayhub/errors"
	"stayhub/models"
	"stayhub/repositories"
	"stayhub/services/logger"
	"stayhub/services/notification"
)

// Sweep policy windows
const (
	PendingPaymentTTL    = 30 * time.Minute
	ProcessingStuckAfter = 5 * time.Minute
)

// CreatePaymentCommand describes a new payment. ReservationID may be
// nil: advertising and pre-checkout payments attach their reservation
// later.
type CreatePaymentCommand struct {
	GuestID       *uint
	ReservationID *uint
	Method        string
	CardID        *uint
	AmountRoom    decimal.Decimal
	AmountTax     decimal.Decimal
	AmountTotal   decimal.Decimal
}

type pendingEvent struct {
	kind        string
	recipientID uint
	payload     map[string]interface{}
}

// PaymentService owns the payment lifecycle and the coupling into the
// reservation lifecycle. All state moves happen under row locks inside
// a transaction; notifications fire only after the commit.
type PaymentService struct {
	payments     repositories.PaymentStore
	reservations repositories.ReservationStore
	cards        repositories.CardStore
	tx           repositories.TxManager
	notifier     *notification.Notifier
	log          logger.Logger
}

func NewPaymentService(
	payments repositories.PaymentStore,
	reservations repositories.ReservationStore,
	cards repositories.CardStore,
	tx repositories.TxManager,
	notifier *notification.Notifier,
	log logger.Logger,
) *PaymentService {
	return &PaymentService{
		payments:     payments,
		reservations: reservations,
		cards:        cards,
		tx:           tx,
		notifier:     notifier,
		log:          log,
	}
}

func validateAmounts(cmd CreatePaymentCommand) error {
	if !cmd.AmountTotal.IsPositive() || cmd.AmountRoom.IsNegative() || cmd.AmountTax.IsNegative() {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount,
			"payment amounts must be positive", apperrors.ErrInvalidAmount)
	}
	if !cmd.AmountRoom.Add(cmd.AmountTax).Equal(cmd.AmountTotal) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount,
			"room amount plus tax must equal the total", apperrors.ErrInvalidAmount)
	}
	return nil
}

// CreatePayment registers a payment. Transfer payments start and stay
// PENDING until approved out-of-band. Card payments skip PENDING, enter
// PROCESSING and resolve synchronously against the stored card record
// within the same request.
func (s *PaymentService) CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (*models.Payment, error) {
	if err := validateAmounts(cmd); err != nil {
		return nil, err
	}
	if cmd.Method != models.PaymentMethodCard && cmd.Method != models.PaymentMethodTransfer {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("unknown payment method %q", cmd.Method), apperrors.ErrInvalidInput)
	}

	payment := &models.Payment{
		ReservationID:   cmd.ReservationID,
		GuestID:         cmd.GuestID,
		Method:          cmd.Method,
		CardID:          cmd.CardID,
		TransactionCode: uuid.NewString(),
		AmountRoom:      cmd.AmountRoom,
		AmountTax:       cmd.AmountTax,
		AmountTotal:     cmd.AmountTotal,
		Status:          models.PaymentPending,
	}

	var events []pendingEvent
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Method == models.PaymentMethodTransfer {
			return s.payments.Save(txCtx, payment)
		}

		// Card: no async gateway callback, the processor is a local
		// validation against the stored card.
		if cmd.CardID == nil {
			return apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"card payments require a card id", apperrors.ErrMissingRequired)
		}
		card, err := s.cards.Load(txCtx, *cmd.CardID)
		if err != nil {
			return err
		}

		payment.Status = models.PaymentProcessing
		if err := s.payments.Save(txCtx, payment); err != nil {
			return err
		}

		outcome := models.PaymentRejected
		if card.Usable(time.Now()) {
			outcome = models.PaymentApproved
		}
		evts, err := s.applyPaymentTransition(txCtx, payment, outcome)
		if err != nil {
			return err
		}
		events = evts
		return s.payments.Save(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(events)
	return payment, nil
}

// TransitionPayment moves a payment to target and drives the coupled
// reservation transition, all in one transaction.
func (s *PaymentService) TransitionPayment(ctx context.Context, paymentID uint, target models.PaymentState) (*models.Payment, error) {
	var payment *models.Payment
	var events []pendingEvent

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		p, err := s.payments.LoadForUpdate(txCtx, paymentID)
		if err != nil {
			return err
		}
		evts, err := s.applyPaymentTransition(txCtx, p, target)
		if err != nil {
			return err
		}
		if err := s.payments.Save(txCtx, p); err != nil {
			return err
		}
		payment = p
		events = evts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(events)
	return payment, nil
}

// applyPaymentTransition applies the payment move plus whatever
// reservation move it implies, and collects the notification events to
// fire after commit. Caller persists the payment.
func (s *PaymentService) applyPaymentTransition(txCtx context.Context, p *models.Payment, target models.PaymentState) ([]pendingEvent, error) {
	if err := models.ApplyPaymentTransition(p, target); err != nil {
		return nil, err
	}

	var events []pendingEvent
	if p.GuestID != nil {
		if kind := paymentEventKind(target); kind != "" {
			events = append(events, pendingEvent{
				kind:        kind,
				recipientID: *p.GuestID,
				payload: map[string]interface{}{
					"paymentId":       p.ID,
					"transactionCode": p.TransactionCode,
					"amountTotal":     p.AmountTotal,
				},
			})
		}
	}

	cmd := models.OnPaymentTransition(p, target)
	if cmd == nil {
		return events, nil
	}

	reservation, err := s.reservations.LoadForUpdate(txCtx, *p.ReservationID)
	if err != nil {
		return nil, err
	}
	if cmd.SkipIfTerminal && reservation.Status.IsTerminal() {
		return events, nil
	}
	if err := models.ApplyReservationTransition(reservation, cmd.Target); err != nil {
		return nil, err
	}
	if err := s.reservations.Save(txCtx, reservation); err != nil {
		return nil, err
	}
	events = append(events, reservationEvents(reservation, cmd.Target)...)
	return events, nil
}

// TransitionReservation applies a direct reservation lifecycle move
// (check-in, check-out, close, manual cancel) under a row lock.
func (s *PaymentService) TransitionReservation(ctx context.Context, reservationID uint, target models.ReservationState) (*models.Reservation, error) {
	var reservation *models.Reservation
	var events []pendingEvent

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.reservations.LoadForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if err := models.ApplyReservationTransition(r, target); err != nil {
			return err
		}
		if err := s.reservations.Save(txCtx, r); err != nil {
			return err
		}
		reservation = r
		events = reservationEvents(r, target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(events)
	return reservation, nil
}

// AttachReservation links a pre-existing payment to a reservation and
// immediately reconciles the reservation state from the payment state.
func (s *PaymentService) AttachReservation(ctx context.Context, paymentID, reservationID uint) (*models.Payment, error) {
	var payment *models.Payment
	var events []pendingEvent

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		p, err := s.payments.LoadForUpdate(txCtx, paymentID)
		if err != nil {
			return err
		}
		r, err := s.reservations.LoadForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		p.ReservationID = &r.ID
		if err := s.payments.Save(txCtx, p); err != nil {
			return err
		}

		// Walk the reservation into the state the payment implies.
		targetInitial := ReconcileInitialState(p.Status)
		if targetInitial == models.ReservationPendingPayment && r.Status == models.ReservationCreated {
			if err := models.ApplyReservationTransition(r, models.ReservationPendingPayment); err != nil {
				return err
			}
		}
		if cmd := models.OnPaymentTransition(p, p.Status); cmd != nil {
			if cmd.SkipIfTerminal && r.Status.IsTerminal() {
				return s.reservations.Save(txCtx, r)
			}
			if cmd.Target == models.ReservationPaid && r.Status == models.ReservationCreated {
				if err := models.ApplyReservationTransition(r, models.ReservationPendingPayment); err != nil {
					return err
				}
			}
			if err := models.ApplyReservationTransition(r, cmd.Target); err != nil {
				return err
			}
			events = reservationEvents(r, cmd.Target)
		}
		if err := s.reservations.Save(txCtx, r); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(events)
	return payment, nil
}

// SweepStalePayments expires PENDING payments older than the TTL and
// fails PROCESSING payments stuck past their window. Idempotent and
// safe to run concurrently with itself: a row already resolved by
// another run fails the transition check and is skipped.
func (s *PaymentService) SweepStalePayments(ctx context.Context, now time.Time) error {
	if err := s.sweep(ctx, models.PaymentPending, now.Add(-PendingPaymentTTL), models.PaymentExpired); err != nil {
		return err
	}
	return s.sweep(ctx, models.PaymentProcessing, now.Add(-ProcessingStuckAfter), models.PaymentFailed)
}

func (s *PaymentService) sweep(ctx context.Context, from models.PaymentState, cutoff time.Time, target models.PaymentState) error {
	stale, err := s.payments.FindStale(ctx, from, cutoff)
	if err != nil {
		return err
	}
	for _, p := range stale {
		if _, err := s.TransitionPayment(ctx, p.ID, target); err != nil {
			// Concurrent resolution already moved the row: expected, skip.
			if apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition) {
				s.log.Debug("sweep: payment %d already resolved, skipping", p.ID)
				continue
			}
			return err
		}
		s.log.Info("sweep: payment %d moved %s -> %s", p.ID, from, target)
	}
	return nil
}

func (s *PaymentService) dispatch(events []pendingEvent) {
	for _, e := range events {
		s.notifier.Notify(e.kind, e.recipientID, e.payload)
	}
}

func paymentEventKind(target models.PaymentState) string {
	switch target {
	case models.PaymentApproved:
		return notification.EventPaymentApproved
	case models.PaymentRejected:
		return notification.EventPaymentRejected
	case models.PaymentExpired:
		return notification.EventPaymentExpired
	default:
		return ""
	}
}

func reservationEventKind(target models.ReservationState) string {
	switch target {
	case models.ReservationPaid:
		return notification.EventReservationConfirmed
	case models.ReservationCancelled:
		return notification.EventReservationCancelled
	case models.ReservationCheckedIn:
		return notification.EventReservationCheckedIn
	case models.ReservationCheckedOut:
		return notification.EventReservationCheckedOut
	default:
		return ""
	}
}

func reservationEvents(r *models.Reservation, target models.ReservationState) []pendingEvent {
	kind := reservationEventKind(target)
	if kind == "" || r.GuestID == nil {
		return nil
	}
	return []pendingEvent{{
		kind:        kind,
		recipientID: *r.GuestID,
		payload: map[string]interface{}{
			"reservationId": r.ID,
			"status":        r.Status,
		},
	}}
}
