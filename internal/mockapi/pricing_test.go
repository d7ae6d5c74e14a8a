package mockapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.November, 30},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestCalculateDateDifference(t *testing.T) {
	t.Run("same day counts once", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2026, 10, 12), date(2026, 10, 12))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 0, Days: 1}, diff)
	})

	t.Run("both ends included", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2026, 10, 10), date(2026, 10, 12))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 0, Days: 3}, diff)
	})

	t.Run("borrow across month", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2026, 1, 25), date(2026, 2, 5))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 0, Days: 12}, diff)
	})

	t.Run("borrow across year", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2025, 12, 15), date(2026, 2, 14))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 2, Days: 0}, diff)
	})

	t.Run("start day past end of next month", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2026, 1, 31), date(2026, 3, 1))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 1, Days: 2}, diff)
	})

	t.Run("clamped month end counts as a month", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2026, 3, 31), date(2026, 4, 29))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 1, Days: 0}, diff)
	})

	t.Run("leap february", func(t *testing.T) {
		diff, err := CalculateDateDifference(date(2024, 1, 30), date(2024, 3, 29))
		require.NoError(t, err)
		assert.Equal(t, DateDifference{Months: 2, Days: 0}, diff)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := CalculateDateDifference(date(2026, 10, 12), date(2026, 10, 11))
		assert.Error(t, err)
	})
}

func TestRentalCost(t *testing.T) {
	p := Pricing{PerDay: 400_000, PerWeek: 2_400_000, PerMonth: 8_000_000}

	t.Run("days only", func(t *testing.T) {
		b, err := RentalCost(date(2026, 10, 10), date(2026, 10, 12), p)
		require.NoError(t, err)
		assert.Equal(t, int64(1_200_000), b.TotalCost)
	})

	t.Run("weeks and days", func(t *testing.T) {
		b, err := RentalCost(date(2026, 10, 1), date(2026, 10, 9), p)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Weeks)
		assert.Equal(t, 2, b.Days)
		assert.Equal(t, int64(3_200_000), b.TotalCost)
	})

	t.Run("month and days", func(t *testing.T) {
		b, err := RentalCost(date(2026, 9, 1), date(2026, 10, 1), p)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Months)
		assert.Equal(t, 1, b.Days)
		assert.Equal(t, int64(8_400_000), b.TotalCost)
	})

	t.Run("never negative across short months", func(t *testing.T) {
		b, err := RentalCost(date(2026, 1, 31), date(2026, 3, 1), p)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Months)
		assert.Equal(t, 2, b.Days)
		assert.Equal(t, int64(8_800_000), b.TotalCost)
	})

	t.Run("same day minimum", func(t *testing.T) {
		b, err := RentalCost(date(2026, 10, 12), date(2026, 10, 12).Add(time.Hour), p)
		require.NoError(t, err)
		assert.Equal(t, int64(400_000), b.TotalCost)
	})
}
