package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stayhub/models"
)

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func datedRule(kind string, from, to time.Time, p string) models.AdjustmentRule {
	return models.AdjustmentRule{Kind: kind, From: &from, To: &to, Pct: pct(p), Active: true}
}

func dayRule(kind string, p string) models.AdjustmentRule {
	return models.AdjustmentRule{Kind: kind, Pct: pct(p), Active: true}
}

func TestPriceForNightBasePriceOnly(t *testing.T) {
	profile := models.PricingProfile{BasePrice: decimal.NewFromInt(1000)}
	// Monday, no rules
	price := PriceForNight(profile, date(2025, time.July, 7))
	require.Equal(t, "1000.00", price.StringFixed(2))
}

func TestPriceForNightWeekendSurcharge(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(1000),
		Adjustments: models.AdjustmentList{dayRule(models.AdjustmentWeekend, "20")},
	}
	// Saturday
	price := PriceForNight(profile, date(2025, time.July, 5))
	require.Equal(t, "1200.00", price.StringFixed(2))
}

func TestPriceForNightSeasonAndWeekendStack(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice: decimal.NewFromInt(1000),
		Adjustments: models.AdjustmentList{
			datedRule(models.AdjustmentSeason, date(2025, time.July, 1), date(2025, time.July, 10), "50"),
			dayRule(models.AdjustmentWeekend, "20"),
		},
	}
	// Saturday 2025-07-05: 1000 * 1.5 * 1.2
	price := PriceForNight(profile, date(2025, time.July, 5))
	require.Equal(t, "1800.00", price.StringFixed(2))
}

func TestPriceForNightSeasonWindowInclusive(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice: decimal.NewFromInt(100),
		Adjustments: models.AdjustmentList{
			datedRule(models.AdjustmentSeason, date(2025, time.July, 1), date(2025, time.July, 10), "50"),
		},
	}
	// both window edges apply, the day after does not (Friday 11th is a
	// weekend night but no weekend rule exists)
	require.Equal(t, "150.00", PriceForNight(profile, date(2025, time.July, 1)).StringFixed(2))
	require.Equal(t, "150.00", PriceForNight(profile, date(2025, time.July, 10)).StringFixed(2))
	require.Equal(t, "100.00", PriceForNight(profile, date(2025, time.July, 11)).StringFixed(2))
}

func TestPriceForNightFirstMatchWins(t *testing.T) {
	window := func(p string, active bool) models.AdjustmentRule {
		rule := datedRule(models.AdjustmentSeason, date(2025, time.July, 1), date(2025, time.July, 31), p)
		rule.Active = active
		return rule
	}

	// overlapping season rules never stack; list order is precedence
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(1000),
		Adjustments: models.AdjustmentList{window("50", true), window("10", true)},
	}
	require.Equal(t, "1500.00", PriceForNight(profile, date(2025, time.July, 7)).StringFixed(2))

	// an inactive rule yields to the next match in order
	profile.Adjustments = models.AdjustmentList{window("50", false), window("10", true)}
	require.Equal(t, "1100.00", PriceForNight(profile, date(2025, time.July, 7)).StringFixed(2))
}

func TestPriceForNightSeasonAndEventBothApply(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice: decimal.NewFromInt(1000),
		Adjustments: models.AdjustmentList{
			datedRule(models.AdjustmentSeason, date(2025, time.July, 1), date(2025, time.July, 31), "50"),
			datedRule(models.AdjustmentEvent, date(2025, time.July, 7), date(2025, time.July, 8), "10"),
		},
	}
	// Monday 2025-07-07: 1000 * 1.5 * 1.1
	require.Equal(t, "1650.00", PriceForNight(profile, date(2025, time.July, 7)).StringFixed(2))
}

func TestPriceForNightWeekdayDiscount(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(1000),
		Adjustments: models.AdjustmentList{dayRule(models.AdjustmentWeekday, "-30")},
	}
	// Monday through Thursday take the weekday rate
	require.Equal(t, "700.00", PriceForNight(profile, date(2025, time.July, 7)).StringFixed(2))
	require.Equal(t, "700.00", PriceForNight(profile, date(2025, time.July, 10)).StringFixed(2))
	// Friday night is a weekend night, the weekday rule does not apply
	require.Equal(t, "1000.00", PriceForNight(profile, date(2025, time.July, 11)).StringFixed(2))
	// Sunday too
	require.Equal(t, "1000.00", PriceForNight(profile, date(2025, time.July, 13)).StringFixed(2))
}

func TestPriceForNightWeekdayClampFloor(t *testing.T) {
	for _, p := range []string{"-100", "-150", "-99999"} {
		profile := models.PricingProfile{
			BasePrice:   decimal.NewFromInt(1000),
			Adjustments: models.AdjustmentList{dayRule(models.AdjustmentWeekday, p)},
		}
		price := PriceForNight(profile, date(2025, time.July, 8))
		require.Equal(t, "1.00", price.StringFixed(2), "pct=%s", p)
	}
}

func TestPriceForNightRoundsHalfUp(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(100),
		Adjustments: models.AdjustmentList{dayRule(models.AdjustmentWeekend, "33.335")},
	}
	// 100 * 1.33335 = 133.335 -> 133.34
	price := PriceForNight(profile, date(2025, time.July, 5))
	require.Equal(t, "133.34", price.StringFixed(2))
	require.True(t, price.Exponent() >= -2, "price has more than 2 decimal digits")
}

func TestPriceForNightDeterministic(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice: decimal.NewFromInt(537),
		Adjustments: models.AdjustmentList{
			datedRule(models.AdjustmentSeason, date(2025, time.June, 1), date(2025, time.August, 31), "17.5"),
			dayRule(models.AdjustmentWeekend, "12.5"),
			dayRule(models.AdjustmentWeekday, "-7.25"),
		},
	}
	day := date(2025, time.July, 5)
	first := PriceForNight(profile, day)
	for i := 0; i < 10; i++ {
		require.True(t, first.Equal(PriceForNight(profile, day)))
	}
}

func TestPriceWithTax(t *testing.T) {
	price := decimal.NewFromInt(1000)
	require.Equal(t, "1130.00", PriceWithTax(price).StringFixed(2))
}
