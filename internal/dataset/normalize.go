// backend-go/internal/dataset/normalize.go
package dataset

import "strings"

// NormalizeHeader canonicalizes a column name: BOM stripped, trimmed,
// lower-cased, internal spaces collapsed to underscores. "Invoice Date"
// and "invoice_date" address the same column.
func NormalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\uFEFF")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// stockAliases maps the column names dealers actually type into their
// inventory sheets onto the canonical stock schema. Matching happens after
// NormalizeHeader, so "Available Qty" arrives here as "available_qty".
var stockAliases = map[string]string{
	"sku":          "sku_code",
	"item_code":    "sku_code",
	"product_code": "sku_code",
	"part_no":      "sku_code",
	"part_number":  "sku_code",
	"code":         "sku_code",

	"model":        "model_name",
	"product_name": "model_name",
	"item_name":    "model_name",
	"description":  "model_name",
	"product":      "model_name",
	"item":         "model_name",
	"name":         "model_name",

	"variant_name": "variant",
	"type":         "variant",
	"grade":        "variant",

	"color":       "colour",
	"shade":       "colour",
	"color_name":  "colour",
	"colour_name": "colour",

	"stock":         "current_stock",
	"qty":           "current_stock",
	"quantity":      "current_stock",
	"available_qty": "current_stock",
	"stock_qty":     "current_stock",
	"inventory":     "current_stock",
	"on_hand":       "current_stock",
	"balance":       "current_stock",
	"balance_qty":   "current_stock",
	"closing_stock": "current_stock",
	"available":     "current_stock",
	"units":         "current_stock",

	"city":      "location",
	"dealer":    "location",
	"warehouse": "location",
	"godown":    "location",

	"zone":      "region",
	"area":      "region",
	"state":     "region",
	"territory": "region",
}

// CanonicalStockHeader resolves a raw stock sheet column name to its
// canonical form, passing through names that already match the schema.
func CanonicalStockHeader(name string) string {
	normalized := NormalizeHeader(name)
	if canonical, ok := stockAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
