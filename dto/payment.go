package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stayhub/models"
)

type CreatePaymentRequest struct {
	GuestID       *uint           `json:"guestId"`
	ReservationID *uint           `json:"reservationId"`
	Method        string          `json:"method"`
	CardID        *uint           `json:"cardId"`
	AmountRoom    decimal.Decimal `json:"amountRoom"`
	AmountTax     decimal.Decimal `json:"amountTax"`
	AmountTotal   decimal.Decimal `json:"amountTotal"`
}

type PaymentStatusRequest struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type AttachReservationRequest struct {
	PaymentID     uint `json:"paymentId"`
	ReservationID uint `json:"reservationId"`
}

type PaymentResponse struct {
	ID              uint                `json:"id"`
	ReservationID   *uint               `json:"reservationId,omitempty"`
	Method          string              `json:"method"`
	TransactionCode string              `json:"transactionCode"`
	AmountRoom      decimal.Decimal     `json:"amountRoom"`
	AmountTax       decimal.Decimal     `json:"amountTax"`
	AmountTotal     decimal.Decimal     `json:"amountTotal"`
	Status          models.PaymentState `json:"status"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}
