package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stayhub/models"
)

type RoomLineRequest struct {
	RoomID    uint `json:"roomId"`
	Occupancy int  `json:"occupancy"`
}

type CreateReservationRequest struct {
	LodgingID    uint              `json:"lodgingId"`
	GuestID      *uint             `json:"guestId"`
	GuestName    string            `json:"guestName,omitempty"`
	GuestEmail   string            `json:"guestEmail,omitempty"`
	GuestPhone   string            `json:"guestPhone,omitempty"`
	CheckInDate  string            `json:"checkInDate"`
	CheckOutDate string            `json:"checkOutDate"`
	Rooms        []RoomLineRequest `json:"rooms"`
	PaymentID    *uint             `json:"paymentId"`
}

type ReservationStatusRequest struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type RoomLineResponse struct {
	RoomID             uint            `json:"roomId"`
	BasePriceAtBooking decimal.Decimal `json:"basePriceAtBooking"`
	Occupancy          int             `json:"occupancy"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
}

type ReservationResponse struct {
	ID           uint                    `json:"id"`
	LodgingID    uint                    `json:"lodgingId"`
	GuestID      *uint                   `json:"guestId,omitempty"`
	GuestName    string                  `json:"guestName,omitempty"`
	CheckInDate  string                  `json:"checkInDate"`
	CheckOutDate string                  `json:"checkOutDate"`
	Status       models.ReservationState `json:"status"`
	TotalAmount  decimal.Decimal         `json:"totalAmount"`
	TaxAmount    decimal.Decimal         `json:"taxAmount"`
	Rooms        []RoomLineResponse      `json:"rooms"`
	CreatedAt    time.Time               `json:"createdAt"`
}

type RoomAvailability struct {
	RoomID    uint `json:"roomId"`
	Available bool `json:"available"`
}
