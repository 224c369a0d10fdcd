// backend-go/internal/domain/models.go
package domain

import "time"

// Source types recorded on every sales row so the dataset origin is auditable.
const (
	SourceSample   = "sample"
	SourceUploaded = "uploaded"
	SourceDrive    = "drive"
)

// SaleRecord is one invoiced sale of a two-wheeler unit (or units).
// Rows are immutable once stored; the dataset changes only through bulk
// replace, append or clear.
type SaleRecord struct {
	ID           int64      `json:"id" db:"id"`
	InvoiceDate  time.Time  `json:"invoice_date" db:"invoice_date"`
	SKUCode      string     `json:"sku_code" db:"sku_code"`
	ModelName    string     `json:"model_name" db:"model_name"`
	Variant      string     `json:"variant" db:"variant"`
	Colour       string     `json:"colour" db:"colour"`
	QuantitySold int        `json:"quantity_sold" db:"quantity_sold"`
	UnitPrice    float64    `json:"unit_price" db:"unit_price"`
	TotalValue   float64    `json:"total_value" db:"total_value"`
	Location     string     `json:"location,omitempty" db:"location"`
	Region       string     `json:"region,omitempty" db:"region"`
	SourceType   string     `json:"source_type" db:"source_type"`
	UploadedAt   *time.Time `json:"uploaded_at,omitempty" db:"uploaded_at"`
}

// SKU identifies a sellable configuration. Derived by grouping sale records,
// never stored on its own.
type SKU struct {
	Code      string `json:"sku_code"`
	ModelName string `json:"model_name"`
	Variant   string `json:"variant"`
	Colour    string `json:"colour"`
}

// SKUOf extracts the SKU identity of a sale record.
func SKUOf(r SaleRecord) SKU {
	return SKU{Code: r.SKUCode, ModelName: r.ModelName, Variant: r.Variant, Colour: r.Colour}
}

// StockItem is one row of uploaded dealer inventory.
type StockItem struct {
	ID           int64     `json:"id" db:"id"`
	SKUCode      string    `json:"sku_code" db:"sku_code"`
	ModelName    string    `json:"model_name" db:"model_name"`
	Variant      string    `json:"variant" db:"variant"`
	Colour       string    `json:"colour" db:"colour"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	Location     string    `json:"location,omitempty" db:"location"`
	Region       string    `json:"region,omitempty" db:"region"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// FestivalEvent is a curated calendar entry. ImpactPct is the peak demand
// uplift in percent on the festival day itself.
type FestivalEvent struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Region    string    `json:"region"`
	ImpactPct int       `json:"impact_pct"`
}

// UpcomingFestival annotates a festival with its distance from a reference
// day and the length of its pre-festival demand ramp.
type UpcomingFestival struct {
	FestivalEvent
	DaysAway      int `json:"days_away"`
	PreWindowDays int `json:"pre_window_days"`
}

// FestivalImpact is one year's observation of a festival in the curated
// calendar, used for impact-history lookups.
type FestivalImpact struct {
	Year      int       `json:"year"`
	Date      time.Time `json:"date"`
	ImpactPct int       `json:"impact_pct"`
}

// MarriageSeasonInfo describes an active or upcoming wedding-season window.
type MarriageSeasonInfo struct {
	Season             string   `json:"season"`
	Month              int      `json:"month"`
	UpliftPct          int      `json:"uplift_pct"`
	RecommendedColours []string `json:"recommended_colours"`
	RecommendedTypes   []string `json:"recommended_types"`
	DaysAway           int      `json:"days_away"`
}
