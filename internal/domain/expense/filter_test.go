package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantMonday time.Time
	}{
		{
			name:       "midweek",
			now:        day(2026, time.March, 11, 14, 0), // Wednesday
			wantMonday: day(2026, time.March, 9, 0, 0),
		},
		{
			name:       "monday itself",
			now:        day(2026, time.March, 9, 0, 0),
			wantMonday: day(2026, time.March, 9, 0, 0),
		},
		{
			name:       "sunday closes the week",
			now:        day(2026, time.March, 15, 23, 0),
			wantMonday: day(2026, time.March, 9, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := WeekRange(tt.now)

			assert.Equal(t, tt.wantMonday, from)
			assert.Equal(t, tt.wantMonday.AddDate(0, 0, 6).Day(), to.Day())
			assert.Equal(t, 23, to.Hour())
		})
	}
}

func TestHalfMonthRange(t *testing.T) {
	t.Run("late on the 15th is still the first half", func(t *testing.T) {
		from, to := HalfMonthRange(day(2026, time.March, 15, 23, 59))

		assert.Equal(t, day(2026, time.March, 1, 0, 0), from)
		assert.Equal(t, 15, to.Day())
	})

	t.Run("midnight on the 16th is the second half", func(t *testing.T) {
		from, to := HalfMonthRange(day(2026, time.March, 16, 0, 0))

		assert.Equal(t, day(2026, time.March, 16, 0, 0), from)
		assert.Equal(t, 31, to.Day())
	})

	t.Run("second half ends with a short month", func(t *testing.T) {
		_, to := HalfMonthRange(day(2026, time.February, 20, 12, 0))

		assert.Equal(t, 28, to.Day())
	})
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(day(2026, time.February, 10, 12, 0))

	assert.Equal(t, day(2026, time.February, 1, 0, 0), from)
	assert.Equal(t, 28, to.Day())
}

func TestRollingRange(t *testing.T) {
	now := day(2026, time.March, 14, 15, 0)

	from, to := RollingRange(now, 7)
	assert.Equal(t, day(2026, time.March, 8, 0, 0), from)
	assert.Equal(t, 14, to.Day())

	from, _ = RollingRange(now, 0)
	assert.Equal(t, day(2026, time.March, 14, 0, 0), from, "a window never shrinks below one day")
}

func TestFilter(t *testing.T) {
	base := day(2026, time.March, 10, 12, 0)
	expenses := []Expense{
		{ID: "1", Product: "Morning Coffee", Price: 3.5, Category: "Food", Timestamp: base},
		{ID: "2", Product: "Bus ticket", Price: 1.5, Category: "Transport", Timestamp: base.Add(24 * time.Hour)},
		{ID: "3", Product: "coffee beans", Price: 12, Category: "Food", Timestamp: base.Add(48 * time.Hour)},
	}

	t.Run("product match is substring and case-insensitive", func(t *testing.T) {
		got := Apply(expenses, Filter{Product: "COFFEE"})

		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "3", got[1].ID)
	})

	t.Run("category match is exact", func(t *testing.T) {
		got := Apply(expenses, Filter{Category: "Transport"})

		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("time bounds are inclusive", func(t *testing.T) {
		got := Apply(expenses, Filter{From: base, To: base.Add(24 * time.Hour)})

		assert.Len(t, got, 2)
	})

	t.Run("criteria compose conjunctively", func(t *testing.T) {
		got := Apply(expenses, Filter{Product: "coffee", Category: "Food", From: base.Add(time.Hour)})

		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("zero filter matches everything", func(t *testing.T) {
		assert.Len(t, Apply(expenses, Filter{}), 3)
	})
}

func TestTotals(t *testing.T) {
	base := day(2026, time.March, 10, 9, 0)
	expenses := []Expense{
		{Product: "Coffee", Price: 3, Category: "Food", Timestamp: base},
		{Product: "Lunch", Price: 9, Category: "Food", Timestamp: base.Add(3 * time.Hour)},
		{Product: "Bus", Price: 12, Category: "Transport", Timestamp: base.Add(26 * time.Hour)},
	}

	assert.Equal(t, 24.0, Sum(expenses))

	t.Run("by category, largest first with name tie-break", func(t *testing.T) {
		got := TotalsByCategory(expenses)

		require.Len(t, got, 2)
		assert.Equal(t, CategoryTotal{Category: "Food", Total: 12, Count: 2}, got[0])
		assert.Equal(t, CategoryTotal{Category: "Transport", Total: 12, Count: 1}, got[1])
	})

	t.Run("by day, ascending", func(t *testing.T) {
		got := TotalsByDay(expenses)

		require.Len(t, got, 2)
		assert.Equal(t, 12.0, got[0].Total)
		assert.True(t, got[0].Day.Before(got[1].Day))
	})
}
