package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationState is the reservation lifecycle state
type ReservationState string

const (
	ReservationCreated        ReservationState = "CREATED"
	ReservationPendingPayment ReservationState = "PENDING_PAYMENT"
	ReservationConfirmed      ReservationState = "CONFIRMED"
	ReservationPaid           ReservationState = "PAID"
	ReservationCheckedIn      ReservationState = "CHECKED_IN"
	ReservationCheckedOut     ReservationState = "CHECKED_OUT"
	ReservationClosed         ReservationState = "CLOSED"
	ReservationCancelled      ReservationState = "CANCELLED"
)

// BlockingStates are the states that hold physical room capacity.
// A reservation in any other state never blocks availability.
var BlockingStates = []ReservationState{
	ReservationCreated,
	ReservationConfirmed,
	ReservationPaid,
	ReservationCheckedIn,
	ReservationCheckedOut,
}

// IsTerminal reports whether no further transition is allowed from s
func (s ReservationState) IsTerminal() bool {
	return s == ReservationCancelled || s == ReservationClosed
}

type Reservation struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	LodgingID    uint             `json:"lodgingId"`
	GuestID      *uint            `json:"guestId"`
	GuestName    string           `json:"guestName,omitempty"`
	GuestEmail   string           `json:"guestEmail,omitempty"`
	GuestPhone   string           `json:"guestPhone,omitempty"`
	CheckInDate  time.Time        `json:"checkInDate" gorm:"type:date"`
	CheckOutDate time.Time        `json:"checkOutDate" gorm:"type:date"`
	Status       ReservationState `json:"status" gorm:"type:varchar(20)"`
	TotalAmount  decimal.Decimal  `json:"totalAmount" gorm:"type:numeric(12,2)"`
	TaxAmount    decimal.Decimal  `json:"taxAmount" gorm:"type:numeric(12,2)"`
	Lines        []RoomLine       `json:"lines" gorm:"foreignKey:ReservationID"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RoomLine is the per-room price snapshot taken at booking time.
// It is immutable after creation; re-pricing only happens on new quotes.
type RoomLine struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	ReservationID      uint            `json:"reservationId"`
	RoomID             uint            `json:"roomId"`
	BasePriceAtBooking decimal.Decimal `json:"basePriceAtBooking" gorm:"type:numeric(12,2)"`
	Occupancy          int             `json:"occupancy"`
	FinalPrice         decimal.Decimal `json:"finalPrice" gorm:"type:numeric(12,2)"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}
