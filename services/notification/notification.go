package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olahol/melody"

	"stayhub/services/logger"
)

// Event kinds
const (
	EventReservationCreated    = "reservation.created"
	EventReservationConfirmed  = "reservation.confirmed"
	EventReservationCancelled  = "reservation.cancelled"
	EventReservationCheckedIn  = "reservation.checked_in"
	EventReservationCheckedOut = "reservation.checked_out"
	EventPaymentApproved       = "payment.approved"
	EventPaymentRejected       = "payment.rejected"
	EventPaymentExpired        = "payment.expired"
)

// Event is the payload delivered to every sink
type Event struct {
	ID          string                 `json:"id"`
	Kind        string                 `json:"kind"`
	RecipientID uint                   `json:"recipientId"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Sink delivers one event somewhere
type Sink interface {
	Send(event Event) error
}

// MelodySink broadcasts events to connected websocket clients
type MelodySink struct {
	m *melody.Melody
}

func NewMelodySink(m *melody.Melody) *MelodySink {
	return &MelodySink{m: m}
}

func (s *MelodySink) Send(event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(data)
}

// LogSink writes events to the application log
type LogSink struct {
	log logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(event Event) error {
	s.log.Info("notification %s kind=%s recipient=%d", event.ID, event.Kind, event.RecipientID)
	return nil
}

// Notifier fans an event out to all sinks. Fire-and-forget: sink
// failures are logged and never surface to the caller, so a broken
// delivery channel cannot roll back a committed state change.
type Notifier struct {
	sinks []Sink
	log   logger.Logger
}

func NewNotifier(log logger.Logger, sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks, log: log}
}

func (n *Notifier) Notify(kind string, recipientID uint, payload map[string]interface{}) {
	event := Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		RecipientID: recipientID,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}
	for _, sink := range n.sinks {
		if err := sink.Send(event); err != nil {
			n.log.Error("notification %s kind=%s failed: %v", event.ID, kind, err)
		}
	}
}
