package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState is the payment lifecycle state
type PaymentState string

const (
	PaymentPending    PaymentState = "PENDING"
	PaymentProcessing PaymentState = "PROCESSING"
	PaymentApproved   PaymentState = "APPROVED"
	PaymentRejected   PaymentState = "REJECTED"
	PaymentCancelled  PaymentState = "CANCELLED"
	PaymentRefunded   PaymentState = "REFUNDED"
	PaymentExpired    PaymentState = "EXPIRED"
	PaymentFailed     PaymentState = "FAILED"
)

// IsTerminal reports whether no further transition is allowed from s
func (s PaymentState) IsTerminal() bool {
	return s == PaymentCancelled || s == PaymentRefunded
}

// Payment methods
const (
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// Payment may exist before its reservation: ReservationID is nullable
// and attached post-hoc. Once approved, AmountTotal is immutable.
type Payment struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ReservationID   *uint           `json:"reservationId"`
	GuestID         *uint           `json:"guestId"`
	Method          string          `json:"method" gorm:"type:varchar(20)"`
	CardID          *uint           `json:"cardId"`
	TransactionCode string          `json:"transactionCode" gorm:"type:varchar(40)"`
	AmountRoom      decimal.Decimal `json:"amountRoom" gorm:"type:numeric(12,2)"`
	AmountTax       decimal.Decimal `json:"amountTax" gorm:"type:numeric(12,2)"`
	AmountTotal     decimal.Decimal `json:"amountTotal" gorm:"type:numeric(12,2)"`
	Status          PaymentState    `json:"status" gorm:"type:varchar(20)"`
	PaidAt          *time.Time      `json:"paidAt"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
