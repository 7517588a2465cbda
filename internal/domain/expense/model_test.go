package expense

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Now()

	t.Run("assigns a client identifier", func(t *testing.T) {
		e, err := New("Coffee", 3.5, "Food", now)

		require.NoError(t, err)
		_, parseErr := uuid.Parse(e.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, "Coffee", e.Product)
		assert.Equal(t, "Food", e.Category)
	})

	t.Run("empty category becomes the default", func(t *testing.T) {
		e, err := New("Coffee", 3.5, "  ", now)

		require.NoError(t, err)
		assert.Equal(t, DefaultCategory, e.Category)
	})

	t.Run("trims the product name", func(t *testing.T) {
		e, err := New("  Coffee ", 3.5, "Food", now)

		require.NoError(t, err)
		assert.Equal(t, "Coffee", e.Product)
	})
}

func TestValidate(t *testing.T) {
	now := time.Now()
	valid := Expense{ID: "1", Product: "Coffee", Price: 3.5, Category: "Food", Timestamp: now}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{name: "valid", mutate: func(e *Expense) {}, wantErr: nil},
		{name: "empty product", mutate: func(e *Expense) { e.Product = " " }, wantErr: ErrEmptyProduct},
		{name: "zero price", mutate: func(e *Expense) { e.Price = 0 }, wantErr: ErrNonPositivePrice},
		{name: "negative price", mutate: func(e *Expense) { e.Price = -1 }, wantErr: ErrNonPositivePrice},
		{name: "empty category", mutate: func(e *Expense) { e.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "zero timestamp", mutate: func(e *Expense) { e.Timestamp = time.Time{} }, wantErr: ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)

			err := e.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	expenses := []Expense{
		{ID: "a", Timestamp: base},
		{ID: "b", Timestamp: base.Add(2 * time.Hour)},
		{ID: "c", Timestamp: base.Add(time.Hour)},
	}

	SortNewestFirst(expenses)

	assert.Equal(t, []string{"b", "c", "a"}, []string{expenses[0].ID, expenses[1].ID, expenses[2].ID})
}

func TestBuildRegistry(t *testing.T) {
	expenses := []Expense{
		{Category: "Transport"},
		{Category: "Food"},
	}

	registry := BuildRegistry([]string{"Food", "Leisure", " "}, expenses)

	assert.Equal(t, Registry{"Food", DefaultCategory, "Leisure", "Transport"}, registry)
}

func TestRegistry(t *testing.T) {
	registry := BuildRegistry([]string{"Food"}, nil)

	t.Run("contains", func(t *testing.T) {
		assert.True(t, registry.Contains("Food"))
		assert.False(t, registry.Contains("Leisure"))
	})

	t.Run("with category keeps sorting and deduplicates", func(t *testing.T) {
		extended := registry.WithCategory("Aaa")
		assert.Equal(t, Registry{"Aaa", "Food", DefaultCategory}, extended)
		assert.Equal(t, extended, extended.WithCategory("Food"))
	})

	t.Run("without category", func(t *testing.T) {
		assert.Equal(t, Registry{DefaultCategory}, registry.WithoutCategory("Food"))
	})

	t.Run("the default category cannot be removed", func(t *testing.T) {
		assert.Equal(t, registry, registry.WithoutCategory(DefaultCategory))
	})
}
