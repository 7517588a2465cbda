package expense

import (
	"sort"
	"strings"
	"time"
)

// Reporting helpers. Every function is a pure transform over an expense
// slice: "now" is always passed in so the same call yields the same result
// within one logical operation.

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// WeekRange returns the Monday-to-Sunday week containing now, with
// day-inclusive bounds.
func WeekRange(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	if weekday == 0 { // Sunday closes the week
		weekday = 7
	}
	monday := StartOfDay(now).AddDate(0, 0, -(weekday - 1))
	return monday, EndOfDay(monday.AddDate(0, 0, 6))
}

// MonthRange returns the calendar month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, EndOfDay(first.AddDate(0, 1, -1))
}

// HalfMonthRange returns the half of the month containing now: the 1st
// through the 15th, or the 16th through the end of the month. The boundary
// is exact: 23:59 on the 15th is still the first half, 00:00 on the 16th
// already the second.
func HalfMonthRange(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if now.Day() <= 15 {
		return first, EndOfDay(first.AddDate(0, 0, 14))
	}
	return first.AddDate(0, 0, 15), EndOfDay(first.AddDate(0, 1, -1))
}

// RollingRange returns the window covering the last n calendar days up to
// and including today.
func RollingRange(now time.Time, n int) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	return StartOfDay(now).AddDate(0, 0, -(n - 1)), EndOfDay(now)
}

// DayBounds widens an arbitrary start/end pair to inclusive day boundaries.
func DayBounds(start, end time.Time) (time.Time, time.Time) {
	return StartOfDay(start), EndOfDay(end)
}

// Filter narrows an expense collection. Zero-valued fields are inactive;
// active fields compose conjunctively.
type Filter struct {
	Product  string
	Category string
	From     time.Time
	To       time.Time
}

// Matches reports whether e passes every active criterion.
func (f Filter) Matches(e Expense) bool {
	if f.Product != "" && !strings.Contains(strings.ToLower(e.Product), strings.ToLower(f.Product)) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && e.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Timestamp.After(f.To) {
		return false
	}
	return true
}

// Apply returns the expenses matching the filter, preserving input order.
func Apply(expenses []Expense, f Filter) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Sum totals the prices of the given expenses.
func Sum(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Price
	}
	return total
}

// CategoryTotal is a per-category rollup for summary and chart views.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

// TotalsByCategory buckets expenses per category, largest total first.
func TotalsByCategory(expenses []Expense) []CategoryTotal {
	buckets := map[string]*CategoryTotal{}
	for _, e := range expenses {
		b, ok := buckets[e.Category]
		if !ok {
			b = &CategoryTotal{Category: e.Category}
			buckets[e.Category] = b
		}
		b.Total += e.Price
		b.Count++
	}

	out := make([]CategoryTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DayTotal is a per-day rollup for chart consumption.
type DayTotal struct {
	Day   time.Time
	Total float64
}

// TotalsByDay buckets expenses per calendar day in ascending order.
func TotalsByDay(expenses []Expense) []DayTotal {
	buckets := map[time.Time]float64{}
	for _, e := range expenses {
		buckets[StartOfDay(e.Timestamp)] += e.Price
	}

	out := make([]DayTotal, 0, len(buckets))
	for day, total := range buckets {
		out = append(out, DayTotal{Day: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}
