package expense

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// CSV column set shared by export and import. The header names are the
// product's historical Spanish ones and are part of the exchange format.
var csvHeader = []string{"Producto", "Precio", "Categoria", "Timestamp"}

// Timestamp layouts accepted on import. ISO 8601 is canonical; the
// dd/MM/yyyy variants are tolerated for files produced by spreadsheets.
var importLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ImportResult reports what a CSV ingest did. Rows failing validation are
// skipped and counted, never abort the import.
type ImportResult struct {
	Imported []Expense
	Skipped  int
}

// ExportCSV writes the expenses as CSV with ISO 8601 timestamps.
func ExportCSV(w io.Writer, expenses []Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			e.Product,
			strconv.FormatFloat(e.Price, 'f', -1, 64),
			e.Category,
			e.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV parses the reader as an expense CSV. Each valid row becomes an
// Expense with a fresh client identifier and a normalized category; invalid
// rows are logged and counted as skipped.
func ImportCSV(r io.Reader, log *slog.Logger) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Warn("skipping malformed CSV line", "line", line, "error", err)
			result.Skipped++
			continue
		}

		e, err := parseRow(row, cols)
		if err != nil {
			log.Warn("skipping invalid CSV row", "line", line, "error", err)
			result.Skipped++
			continue
		}
		result.Imported = append(result.Imported, e)
	}

	return result, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, want := range csvHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", want)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (Expense, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	price, err := strconv.ParseFloat(field("Precio"), 64)
	if err != nil {
		return Expense{}, fmt.Errorf("parse price %q: %w", field("Precio"), err)
	}

	ts, err := parseImportTimestamp(field("Timestamp"))
	if err != nil {
		return Expense{}, err
	}

	return New(field("Producto"), price, field("Categoria"), ts)
}

func parseImportTimestamp(value string) (time.Time, error) {
	for _, layout := range importLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}
