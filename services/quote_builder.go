package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "stayhub/errors"
	"stayhub/models"
)

// NightPrice is the computed price for one calendar night
type NightPrice struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// Quote is the per-night and subtotal pricing for a prospective stay.
// Not persisted; reservations snapshot their own line prices.
type Quote struct {
	PerNight   []NightPrice    `json:"perNight"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	MinNightly decimal.Decimal `json:"minNightly"`
}

// BuildQuote prices every night from `from` (inclusive) to `to`
// (exclusive), matching the half-open booking interval: a one-night
// stay checking in on D and out on D+1 prices exactly night D.
// MinNightly backs "price from" search display.
func BuildQuote(profile models.PricingProfile, from, to time.Time) (Quote, error) {
	from = Midnight(from)
	to = Midnight(to)
	if !to.After(from) {
		return Quote{}, apperrors.NewAppError(
			apperrors.ErrCodeInvalidDate,
			"check-out date must be after check-in date",
			apperrors.ErrInvalidInput,
		)
	}

	quote := Quote{Subtotal: decimal.Zero}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		price := PriceForNight(profile, d)
		quote.PerNight = append(quote.PerNight, NightPrice{Date: d, Price: price})
		quote.Subtotal = quote.Subtotal.Add(price)
		if len(quote.PerNight) == 1 || price.LessThan(quote.MinNightly) {
			quote.MinNightly = price
		}
	}
	return quote, nil
}
