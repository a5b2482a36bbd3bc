package models

import "time"

// Card is a stored payment instrument. Card payments are validated
// against this record synchronously, there is no external gateway.
type Card struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	GuestID      uint      `json:"guestId"`
	Holder       string    `json:"holder"`
	MaskedNumber string    `json:"maskedNumber"`
	ExpiryMonth  int       `json:"expiryMonth"`
	ExpiryYear   int       `json:"expiryYear"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Usable reports whether the card can approve a payment at the given time
func (c *Card) Usable(at time.Time) bool {
	if !c.Active {
		return false
	}
	// valid through the last day of the expiry month
	expiry := time.Date(c.ExpiryYear, time.Month(c.ExpiryMonth)+1, 1, 0, 0, 0, 0, time.UTC)
	return at.Before(expiry)
}
