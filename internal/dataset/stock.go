// backend-go/internal/dataset/stock.go
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

var (
	// ErrMissingSKUColumn means no column resolved to sku_code after aliasing.
	ErrMissingSKUColumn = errors.New("missing SKU column. Accepted names: sku_code, sku, item_code, product_code, part_no, code")
	// ErrMissingStockColumn means no column resolved to current_stock after aliasing.
	ErrMissingStockColumn = errors.New("missing stock quantity column. Accepted names: current_stock, stock, qty, quantity, available_qty, balance, on_hand, closing_stock")
)

// maxStockErrors caps the per-row error list in upload responses.
const maxStockErrors = 20

// StockParse is the outcome of parsing a stock sheet: accepted items plus
// the rows that were skipped and why. Skips never fail the upload.
type StockParse struct {
	Items   []domain.StockItem
	Skipped int
	Errors  []string
}

// ParseStockFile parses an uploaded stock inventory file, dispatching on
// the filename extension.
func ParseStockFile(filename string, content []byte, uploadedAt time.Time) (*StockParse, error) {
	rows, err := fileRows(filename, content)
	if err != nil {
		return nil, err
	}
	return ParseStockRows(rows, uploadedAt)
}

// ParseStockRows validates raw stock rows. Headers go through the alias
// table, so a sheet with "Item Code" and "Qty" columns parses the same as
// one with "sku_code" and "current_stock". Rows without a usable SKU are
// skipped silently; rows whose stock cell cannot be coerced are skipped
// with a recorded error.
func ParseStockRows(rows [][]string, uploadedAt time.Time) (*StockParse, error) {
	if len(rows) == 0 {
		return nil, ErrMissingSKUColumn
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		key := CanonicalStockHeader(name)
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	if _, ok := cols["sku_code"]; !ok {
		return nil, ErrMissingSKUColumn
	}
	if _, ok := cols["current_stock"]; !ok {
		return nil, ErrMissingStockColumn
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	orDefault := func(raw, fallback string) string {
		if raw == "" {
			return fallback
		}
		return raw
	}

	parse := &StockParse{Errors: []string{}}
	for i, row := range rows[1:] {
		sku := cell(row, "sku_code")
		switch strings.ToLower(sku) {
		case "", "nan", "none":
			parse.Skipped++
			continue
		}

		stock, err := parseStockQuantity(cell(row, "current_stock"))
		if err != nil {
			parse.Skipped++
			if len(parse.Errors) < maxStockErrors {
				parse.Errors = append(parse.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			}
			continue
		}

		parse.Items = append(parse.Items, domain.StockItem{
			SKUCode:      sku,
			ModelName:    orDefault(cell(row, "model_name"), sku),
			Variant:      orDefault(cell(row, "variant"), "Standard"),
			Colour:       orDefault(cell(row, "colour"), "Default"),
			CurrentStock: stock,
			Location:     cell(row, "location"),
			Region:       cell(row, "region"),
			UploadedAt:   uploadedAt,
		})
	}
	return parse, nil
}

// parseStockQuantity coerces a stock cell to a whole unit count. Thousands
// separators are tolerated and fractions truncate; an empty cell counts as
// zero stock.
func parseStockQuantity(raw string) (int, error) {
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stock quantity %q", raw)
	}
	return int(f), nil
}
