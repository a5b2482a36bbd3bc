package services

import (
	"time"

	"github.com/shopspring/decimal"

	"stayhub/models"
)

var (
	minNightlyPrice = decimal.NewFromInt(1)
	hundred         = decimal.NewFromInt(100)

	// TaxRate is the fixed guest-facing surcharge
	TaxRate = decimal.NewFromFloat(0.13)
)

// Midnight truncates t to its calendar date in UTC
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isWeekendNight: Friday, Saturday and Sunday nights take the weekend rate
func isWeekendNight(d time.Weekday) bool {
	return d == time.Friday || d == time.Saturday || d == time.Sunday
}

// applyPct multiplies price by (1 + pct/100) and clamps the result to a
// floor of 1 currency unit so discounts can never drive it to zero.
func applyPct(price, pct decimal.Decimal) decimal.Decimal {
	price = price.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))
	if price.LessThan(minNightlyPrice) {
		return minNightlyPrice
	}
	return price
}

// firstDatedRule returns the first active rule of the given kind whose
// inclusive [From, To] window contains day. List order is precedence
// order; overlapping rules of the same kind never stack.
func firstDatedRule(rules models.AdjustmentList, kind string, day time.Time) (models.AdjustmentRule, bool) {
	for _, rule := range rules {
		if !rule.Active || rule.Kind != kind || rule.From == nil || rule.To == nil {
			continue
		}
		from := Midnight(*rule.From)
		to := Midnight(*rule.To)
		if !day.Before(from) && !day.After(to) {
			return rule, true
		}
	}
	return models.AdjustmentRule{}, false
}

// firstDayRule returns the first active WEEKEND or WEEKDAY rule
func firstDayRule(rules models.AdjustmentList, kind string) (models.AdjustmentRule, bool) {
	for _, rule := range rules {
		if rule.Active && rule.Kind == kind {
			return rule, true
		}
	}
	return models.AdjustmentRule{}, false
}

// PriceForNight computes the price of a single night. Deterministic and
// pure: same profile and date always yield the same price.
//
// Rule order: SEASON, EVENT (inclusive date windows, first active match
// of each kind), then WEEKEND or WEEKDAY by day of week. The result is
// rounded half-up to 2 decimals. Tax is not included; see PriceWithTax.
func PriceForNight(profile models.PricingProfile, date time.Time) decimal.Decimal {
	day := Midnight(date)
	price := profile.BasePrice

	if rule, ok := firstDatedRule(profile.Adjustments, models.AdjustmentSeason, day); ok {
		price = applyPct(price, rule.Pct)
	}
	if rule, ok := firstDatedRule(profile.Adjustments, models.AdjustmentEvent, day); ok {
		price = applyPct(price, rule.Pct)
	}

	if isWeekendNight(day.Weekday()) {
		if rule, ok := firstDayRule(profile.Adjustments, models.AdjustmentWeekend); ok {
			price = applyPct(price, rule.Pct)
		}
	} else {
		if rule, ok := firstDayRule(profile.Adjustments, models.AdjustmentWeekday); ok {
			price = applyPct(price, rule.Pct)
		}
	}

	return price.Round(2)
}

// PriceWithTax applies the 13% surcharge on top of a computed price.
// Only for guest-facing per-night display; quote subtotals itemize tax
// separately and must not pass through here as well.
func PriceWithTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(2)
}
