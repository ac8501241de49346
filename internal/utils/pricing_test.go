package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerramientas-backend/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("start_date", "2025-07-15")
		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseDate("start_date", "15/07/2025")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("end_date", "")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestBillableDays(t *testing.T) {
	t.Run("TwoDays", func(t *testing.T) {
		days, err := BillableDays("2025-07-15", "2025-07-17")
		require.NoError(t, err)
		assert.Equal(t, 2, days)
	})

	t.Run("SameDayFloorsToOne", func(t *testing.T) {
		days, err := BillableDays("2025-07-15", "2025-07-15")
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("EndBeforeStartRejected", func(t *testing.T) {
		_, err := BillableDays("2025-07-17", "2025-07-15")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("AcrossMonthBoundary", func(t *testing.T) {
		days, err := BillableDays("2025-07-30", "2025-08-02")
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})
}

func TestComputeRentalCost(t *testing.T) {
	t.Run("FiveDaysAtFifty", func(t *testing.T) {
		total, err := ComputeRentalCost(50, "2025-07-15", "2025-07-20")
		require.NoError(t, err)
		assert.Equal(t, 250.0, total)
	})

	t.Run("SameDayChargesOneDay", func(t *testing.T) {
		total, err := ComputeRentalCost(50, "2025-07-15", "2025-07-15")
		require.NoError(t, err)
		assert.Equal(t, 50.0, total)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		total, err := ComputeRentalCost(0, "2025-07-15", "2025-07-20")
		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		_, err := ComputeRentalCost(-10, "2025-07-15", "2025-07-20")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("ReversedRangeRejected", func(t *testing.T) {
		_, err := ComputeRentalCost(50, "2025-07-20", "2025-07-15")
		assert.True(t, domain.IsValidation(err))
	})
}
