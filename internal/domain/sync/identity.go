package sync

import (
	"strconv"

	"gastos/internal/domain/expense"
)

// Identifier classification. An expense id is a server identifier iff it is
// the canonical string form of a non-negative base-10 integer; everything
// else (UUIDs, leading zeros, signs, fractions) is a client identifier.
// This is the single place identifier shape is inspected.

// IsServerID reports whether id was assigned by the server.
func IsServerID(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return false
	}
	return strconv.FormatInt(n, 10) == id
}

// ServerID formats a numeric server id into its canonical string form.
func ServerID(n int64) string {
	return strconv.FormatInt(n, 10)
}

// WirePayload translates a local expense into its push representation: a
// server identifier travels in "id" so the server updates row N, a client
// identifier travels in "local_id" so the server inserts and can echo the
// token back.
func WirePayload(e expense.Expense) PushExpense {
	p := PushExpense{
		Product:   e.Product,
		Price:     e.Price,
		Category:  e.Category,
		Timestamp: e.Timestamp.UTC().Format(timeLayout),
	}
	if IsServerID(e.ID) {
		id := e.ID
		p.ID = &id
	} else {
		localID := e.ID
		p.LocalID = &localID
	}
	return p
}
