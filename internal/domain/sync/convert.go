package sync

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gastos/internal/domain/expense"
)

// Timestamp layouts accepted from the server. RFC 3339 is what the server
// emits; the second form shows up in rows round-tripped through SQL tooling.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FromWireExpense converts a pulled server record into a local Expense.
// The server identifier always becomes the canonical numeric string. A
// record that fails validation (non-finite or non-positive price,
// unparsable timestamp, missing product name) is rejected as a whole, never
// defaulted field by field.
func FromWireExpense(rec PullExpense) (expense.Expense, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(rec.Price), 64)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("price %q: %w", rec.Price, err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return expense.Expense{}, fmt.Errorf("price %q is not finite", rec.Price)
	}

	ts, err := ParseServerTime(rec.Timestamp)
	if err != nil {
		return expense.Expense{}, err
	}

	e := expense.Expense{
		ID:        ServerID(rec.ID),
		Product:   strings.TrimSpace(rec.ProductName),
		Price:     price,
		Category:  expense.NormalizeCategory(rec.Category),
		Timestamp: ts,
	}
	if err := e.Validate(); err != nil {
		return expense.Expense{}, err
	}
	return e, nil
}

// ParseServerTime parses a server-reported timestamp string.
func ParseServerTime(value string) (time.Time, error) {
	for _, layout := range serverTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable server timestamp %q", value)
}
