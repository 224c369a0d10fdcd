// backend-go/internal/dataset/sales.go

// Package dataset parses dealer-uploaded sales and stock files into domain
// records. CSV and XLSX inputs share one row-based path: the workbook reader
// flattens the first sheet into the same [][]string the csv reader produces,
// and all validation happens on raw cells.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// requiredSalesColumns must all be present (after header normalization) for
// an upload to be accepted.
var requiredSalesColumns = []string{"invoice_date", "sku_code", "model_name", "variant", "colour"}

var (
	// ErrUnsupportedFormat rejects files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format, upload a .csv or .xlsx file")
	// ErrNoValidRows means every data row was dropped during validation.
	ErrNoValidRows = errors.New("no valid sales rows found in file")
	// ErrUnreadableFile wraps low-level CSV or workbook decode failures.
	ErrUnreadableFile = errors.New("could not read file")
)

// MissingColumnsError reports required sales columns absent from the header.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (required: %s)",
		strings.Join(e.Missing, ", "), strings.Join(requiredSalesColumns, ", "))
}

// DateParseError reports a non-empty invoice_date cell that could not be
// parsed. A bad date fails the whole upload rather than silently dropping
// the row; an empty cell just drops the row.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse invoice_date %q. Use YYYY-MM-DD format", e.Row, e.Value)
}

var invoiceDateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// ParseSalesFile parses an uploaded sales file, dispatching on the filename
// extension. uploadedAt is stamped on every accepted record.
func ParseSalesFile(filename string, content []byte, uploadedAt time.Time) ([]domain.SaleRecord, error) {
	rows, err := fileRows(filename, content)
	if err != nil {
		return nil, err
	}
	return ParseSalesRows(rows, uploadedAt)
}

func fileRows(filename string, content []byte) ([][]string, error) {
	switch {
	case hasSuffixFold(filename, ".csv"):
		r := csv.NewReader(bytes.NewReader(content))
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		return rows, nil
	case hasSuffixFold(filename, ".xlsx"):
		rows, err := workbookRows(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// IsInvalidFile reports whether an error from ParseSalesFile or
// ParseStockFile describes a problem with the uploaded file itself, as
// opposed to a downstream storage failure.
func IsInvalidFile(err error) bool {
	var (
		missingCols *MissingColumnsError
		badDate     *DateParseError
	)
	switch {
	case errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrUnreadableFile),
		errors.Is(err, ErrNoValidRows),
		errors.Is(err, ErrMissingSKUColumn),
		errors.Is(err, ErrMissingStockColumn),
		errors.As(err, &missingCols),
		errors.As(err, &badDate):
		return true
	}
	return false
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}

// ParseSalesRows validates raw rows (header first) into sale records.
// Rows missing any required value are dropped; numeric cells that fail to
// parse fall back to their defaults (quantity 1, price 0). total_value is
// derived from quantity and price when absent or zero.
func ParseSalesRows(rows [][]string, uploadedAt time.Time) ([]domain.SaleRecord, error) {
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		key := NormalizeHeader(name)
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}

	var missing []string
	for _, name := range requiredSalesColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	stamp := uploadedAt
	records := make([]domain.SaleRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		sku := cell(row, "sku_code")
		model := cell(row, "model_name")
		variant := cell(row, "variant")
		colour := cell(row, "colour")
		rawDate := cell(row, "invoice_date")
		if sku == "" || model == "" || variant == "" || colour == "" || rawDate == "" {
			continue
		}

		day, ok := parseInvoiceDate(rawDate)
		if !ok {
			return nil, &DateParseError{Row: i + 2, Value: rawDate}
		}

		qty := intOr(cell(row, "quantity_sold"), 1)
		price := floatOr(cell(row, "unit_price"), 0)
		total := floatOr(cell(row, "total_value"), 0)
		if total == 0 {
			total = float64(qty) * price
		}

		records = append(records, domain.SaleRecord{
			InvoiceDate:  day,
			SKUCode:      sku,
			ModelName:    model,
			Variant:      variant,
			Colour:       colour,
			QuantitySold: qty,
			UnitPrice:    price,
			TotalValue:   total,
			Location:     cell(row, "location"),
			Region:       cell(row, "region"),
			SourceType:   domain.SourceUploaded,
			UploadedAt:   &stamp,
		})
	}
	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	return records, nil
}

func parseInvoiceDate(raw string) (time.Time, bool) {
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return calendar.Midnight(t), true
		}
	}
	return time.Time{}, false
}

// intOr coerces a numeric cell to int, truncating fractions. Unparseable
// or empty cells take the fallback.
func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return int(f)
}

func floatOr(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}

// SalesSummary condenses accepted records into the upload acknowledgement.
func SalesSummary(records []domain.SaleRecord, uploadedAt time.Time) domain.UploadSummary {
	skus := make(map[string]struct{})
	models := make(map[string]struct{})
	var from, to time.Time
	for _, r := range records {
		skus[r.SKUCode] = struct{}{}
		models[r.ModelName] = struct{}{}
		if from.IsZero() || r.InvoiceDate.Before(from) {
			from = r.InvoiceDate
		}
		if to.IsZero() || r.InvoiceDate.After(to) {
			to = r.InvoiceDate
		}
	}
	return domain.UploadSummary{
		TotalRows:    len(records),
		DateRange:    domain.DateRange{From: from, To: to},
		UniqueSKUs:   len(skus),
		UniqueModels: len(models),
		UploadedAt:   uploadedAt,
	}
}
