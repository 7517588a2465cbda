package expense

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestImportCSV(t *testing.T) {
	log := slog.Default()

	t.Run("valid rows import, invalid rows are skipped", func(t *testing.T) {
		input := strings.Join([]string{
			"Producto,Precio,Categoria,Timestamp",
			"Café,2.5,Comida,2026-03-14T09:30:00Z",
			"Pan,,Comida,2026-03-14T09:30:00Z",
			"Libro,15.99,,15/03/2026 10:00",
			"Gratis,0,Comida,2026-03-14T09:30:00Z",
		}, "\n")

		result, err := ImportCSV(strings.NewReader(input), log)

		require.NoError(t, err)
		require.Len(t, result.Imported, 2)
		assert.Equal(t, 2, result.Skipped)

		cafe := result.Imported[0]
		assert.Equal(t, "Café", cafe.Product)
		assert.Equal(t, 2.5, cafe.Price)
		assert.Equal(t, "Comida", cafe.Category)
		assert.NotEmpty(t, cafe.ID)

		libro := result.Imported[1]
		assert.Equal(t, DefaultCategory, libro.Category, "empty category falls back to the default")
		assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), libro.Timestamp)
	})

	t.Run("columns may appear in any order", func(t *testing.T) {
		input := "Timestamp,Categoria,Precio,Producto\n2026-03-14T09:30:00Z,Comida,2.5,Café\n"

		result, err := ImportCSV(strings.NewReader(input), log)

		require.NoError(t, err)
		require.Len(t, result.Imported, 1)
		assert.Equal(t, "Café", result.Imported[0].Product)
	})

	t.Run("missing column fails the whole import", func(t *testing.T) {
		input := "Producto,Precio\nCafé,2.5\n"

		_, err := ImportCSV(strings.NewReader(input), log)
		assert.Error(t, err)
	})
}

func TestExportCSV(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	expenses := []Expense{
		{ID: "1", Product: "Café", Price: 2.5, Category: "Comida", Timestamp: ts},
	}

	var buf bytes.Buffer
	err := ExportCSV(&buf, expenses)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Producto,Precio,Categoria,Timestamp", lines[0])
	assert.Equal(t, "Café,2.5,Comida,2026-03-14T09:30:00Z", lines[1])
}

func TestExportImportRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	original, err := New("Café con leche", 3.25, "Comida", ts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []Expense{original}))

	result, err := ImportCSV(&buf, slog.Default())
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)

	got := result.Imported[0]
	assert.Equal(t, original.Product, got.Product)
	assert.Equal(t, original.Price, got.Price)
	assert.Equal(t, original.Category, got.Category)
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.NotEqual(t, original.ID, got.ID, "import always assigns a fresh identifier")
}
