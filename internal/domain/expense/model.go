package expense

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is the sentinel substituted whenever no category is
// supplied. It is always present in the registry and cannot be deleted.
const DefaultCategory = "General"

// Expense is a single recorded purchase. ID lives in one of two disjoint
// subspaces: server identifiers (canonical base-10 integer strings assigned
// by the server) and client identifiers (UUIDs assigned locally before the
// server has acknowledged the record).
type Expense struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// New validates the fields and builds an Expense with a fresh client
// identifier. The category is normalized before storage so an empty or
// whitespace-only value never persists.
func New(product string, price float64, category string, ts time.Time) (Expense, error) {
	e := Expense{
		ID:        uuid.NewString(),
		Product:   strings.TrimSpace(product),
		Price:     price,
		Category:  NormalizeCategory(category),
		Timestamp: ts,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Validate enforces the persistence invariants: non-empty product, strictly
// positive price, non-empty category and a real timestamp.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Product) == "" {
		return ErrEmptyProduct
	}
	if e.Price <= 0 {
		return ErrNonPositivePrice
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}

// NormalizeCategory maps empty or whitespace-only input to the default
// sentinel and trims everything else.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// SortNewestFirst orders expenses by timestamp descending in place.
func SortNewestFirst(expenses []Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.After(expenses[j].Timestamp)
	})
}

// Registry is the set of known category names, kept sorted for display.
type Registry []string

// BuildRegistry returns the sorted union of the given category names, the
// categories referenced by the expenses, and the default sentinel. Deriving
// from both sources keeps a category alive even when the explicit list
// omits one that an expense still references.
func BuildRegistry(categories []string, expenses []Expense) Registry {
	seen := map[string]struct{}{DefaultCategory: {}}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" {
			seen[c] = struct{}{}
		}
	}
	for _, e := range expenses {
		if e.Category != "" {
			seen[e.Category] = struct{}{}
		}
	}

	out := make(Registry, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether the registry holds the given category name.
func (r Registry) Contains(name string) bool {
	for _, c := range r {
		if c == name {
			return true
		}
	}
	return false
}

// WithCategory returns the registry with name added, keeping sort order.
func (r Registry) WithCategory(name string) Registry {
	name = NormalizeCategory(name)
	if r.Contains(name) {
		return r
	}
	out := append(Registry{}, r...)
	out = append(out, name)
	sort.Strings(out)
	return out
}

// WithoutCategory returns the registry with name removed. The default
// sentinel is never removed.
func (r Registry) WithoutCategory(name string) Registry {
	if name == DefaultCategory {
		return r
	}
	out := make(Registry, 0, len(r))
	for _, c := range r {
		if c != name {
			out = append(out, c)
		}
	}
	return out
}
