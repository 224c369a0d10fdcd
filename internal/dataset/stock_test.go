// backend-go/internal/dataset/stock_test.go
package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStockFileAliasedHeaders(t *testing.T) {
	stamp := date(2025, time.June, 16)
	content := csvBytes(
		"Item Code,Product Name,Type,Color,Qty,City,Zone",
		"HER-SPL-STD-BLK,Splendor Plus,Standard,Black,45,Delhi,North India",
		"HER-HFD-STD-RED,HF Deluxe,Standard,Red,30,Mumbai,West India",
	)

	parse, err := ParseStockFile("stock.csv", content, stamp)
	require.NoError(t, err)
	require.Len(t, parse.Items, 2)
	assert.Zero(t, parse.Skipped)
	assert.Empty(t, parse.Errors)

	first := parse.Items[0]
	assert.Equal(t, "HER-SPL-STD-BLK", first.SKUCode)
	assert.Equal(t, "Splendor Plus", first.ModelName)
	assert.Equal(t, "Standard", first.Variant)
	assert.Equal(t, "Black", first.Colour)
	assert.Equal(t, 45, first.CurrentStock)
	assert.Equal(t, "Delhi", first.Location)
	assert.Equal(t, "North India", first.Region)
	assert.Equal(t, stamp, first.UploadedAt)
}

func TestParseStockRowsDefaults(t *testing.T) {
	rows := [][]string{
		{"sku", "stock"},
		{"HER-XYZ", "12"},
	}
	parse, err := ParseStockRows(rows, date(2025, time.June, 16))
	require.NoError(t, err)
	require.Len(t, parse.Items, 1)

	item := parse.Items[0]
	assert.Equal(t, "HER-XYZ", item.ModelName)
	assert.Equal(t, "Standard", item.Variant)
	assert.Equal(t, "Default", item.Colour)
	assert.Empty(t, item.Location)
	assert.Empty(t, item.Region)
}

func TestParseStockRowsSkipsAndErrors(t *testing.T) {
	rows := [][]string{
		{"sku_code", "current_stock"},
		{"", "10"},
		{"nan", "10"},
		{"NONE", "10"},
		{"HER-BAD", "abc"},
		{"HER-SEP", "1,250"},
		{"HER-FRA", "12.7"},
		{"HER-EMP", ""},
	}
	parse, err := ParseStockRows(rows, date(2025, time.June, 16))
	require.NoError(t, err)

	require.Len(t, parse.Items, 3)
	assert.Equal(t, 4, parse.Skipped)
	require.Len(t, parse.Errors, 1)
	assert.Equal(t, `row 5: invalid stock quantity "abc"`, parse.Errors[0])

	assert.Equal(t, 1250, parse.Items[0].CurrentStock)
	assert.Equal(t, 12, parse.Items[1].CurrentStock)
	assert.Equal(t, 0, parse.Items[2].CurrentStock)
}

func TestParseStockRowsErrorListCapped(t *testing.T) {
	rows := [][]string{{"sku_code", "current_stock"}}
	for i := 0; i < 25; i++ {
		rows = append(rows, []string{"HER-BAD", "x"})
	}
	parse, err := ParseStockRows(rows, date(2025, time.June, 16))
	require.NoError(t, err)
	assert.Empty(t, parse.Items)
	assert.Equal(t, 25, parse.Skipped)
	assert.Len(t, parse.Errors, 20)
}

func TestParseStockRowsMissingColumns(t *testing.T) {
	t.Run("no sku column", func(t *testing.T) {
		_, err := ParseStockRows([][]string{{"model_name", "current_stock"}}, date(2025, time.June, 16))
		require.ErrorIs(t, err, ErrMissingSKUColumn)
		assert.Contains(t, err.Error(), "Accepted names")
	})

	t.Run("no stock column", func(t *testing.T) {
		_, err := ParseStockRows([][]string{{"sku_code", "model_name"}}, date(2025, time.June, 16))
		assert.ErrorIs(t, err, ErrMissingStockColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseStockRows(nil, date(2025, time.June, 16))
		assert.ErrorIs(t, err, ErrMissingSKUColumn)
	})
}
