package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	apperrors "stayhub/errors"
	"stayhub/models"
)

func TestBuildQuoteOneNightStay(t *testing.T) {
	profile := models.PricingProfile{BasePrice: decimal.NewFromInt(500)}

	// check-in Monday, check-out Tuesday: exactly one night priced
	quote, err := BuildQuote(profile, date(2025, time.July, 7), date(2025, time.July, 8))
	require.NoError(t, err)
	require.Len(t, quote.PerNight, 1)
	require.Equal(t, date(2025, time.July, 7), quote.PerNight[0].Date)
	require.Equal(t, "500.00", quote.Subtotal.StringFixed(2))
	require.Equal(t, "500.00", quote.MinNightly.StringFixed(2))
}

func TestBuildQuoteExcludesCheckoutNight(t *testing.T) {
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(100),
		Adjustments: models.AdjustmentList{dayRule(models.AdjustmentWeekend, "50")},
	}

	// Thursday to Saturday: Thursday and Friday nights only. Saturday,
	// the checkout day, is never priced even though it is the dearest.
	quote, err := BuildQuote(profile, date(2025, time.July, 10), date(2025, time.July, 12))
	require.NoError(t, err)
	require.Len(t, quote.PerNight, 2)
	require.Equal(t, "100.00", quote.PerNight[0].Price.StringFixed(2)) // Thursday
	require.Equal(t, "150.00", quote.PerNight[1].Price.StringFixed(2)) // Friday
	require.Equal(t, "250.00", quote.Subtotal.StringFixed(2))
	require.Equal(t, "100.00", quote.MinNightly.StringFixed(2))
}

func TestBuildQuoteMinNightlyForSearchDisplay(t *testing.T) {
	weekday := models.AdjustmentRule{Kind: models.AdjustmentWeekday, Pct: decimal.NewFromInt(-20), Active: true}
	profile := models.PricingProfile{
		BasePrice:   decimal.NewFromInt(200),
		Adjustments: models.AdjustmentList{weekday},
	}

	// Friday through Monday: weekend nights at 200, none discounted
	quote, err := BuildQuote(profile, date(2025, time.July, 11), date(2025, time.July, 14))
	require.NoError(t, err)
	require.Equal(t, "200.00", quote.MinNightly.StringFixed(2))

	// extend past Monday night and the weekday discount becomes the floor
	quote, err = BuildQuote(profile, date(2025, time.July, 11), date(2025, time.July, 15))
	require.NoError(t, err)
	require.Equal(t, "160.00", quote.MinNightly.StringFixed(2))
}

func TestBuildQuoteRejectsEmptyRange(t *testing.T) {
	profile := models.PricingProfile{BasePrice: decimal.NewFromInt(100)}

	_, err := BuildQuote(profile, date(2025, time.July, 7), date(2025, time.July, 7))
	require.Error(t, err)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidDate))

	_, err = BuildQuote(profile, date(2025, time.July, 8), date(2025, time.July, 7))
	require.Error(t, err)
}
