package domain

import "time"

// YoYPoint is one calendar month with its growth against the same month a
// year earlier. GrowthPct is nil when the prior-year month is absent or zero.
type YoYPoint struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Units     int      `json:"units"`
	Revenue   float64  `json:"revenue"`
	GrowthPct *float64 `json:"growth_pct"`
}

// MoMPoint is one calendar month with its growth against the previous month.
type MoMPoint struct {
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Units        int      `json:"units"`
	Revenue      float64  `json:"revenue"`
	MoMGrowthPct *float64 `json:"mom_growth_pct"`
}

// SKUPerformance is the per-SKU scorecard used by rankings, slow-mover
// detection and the dashboard.
type SKUPerformance struct {
	SKUCode         string   `json:"sku_code"`
	ModelName       string   `json:"model_name"`
	Variant         string   `json:"variant"`
	Colour          string   `json:"colour"`
	TotalUnits      int      `json:"total_units"`
	TotalRevenue    float64  `json:"total_revenue"`
	AvgMonthlyUnits float64  `json:"avg_monthly_units"`
	YoYGrowthPct    *float64 `json:"yoy_growth_pct"`
	MoMGrowthPct    *float64 `json:"mom_growth_pct"`
	IsSlowMoving    bool     `json:"is_slow_moving"`
	DeadStockRisk   float64  `json:"dead_stock_risk"`
}

// ColourStats summarises demand for one colour across all models.
type ColourStats struct {
	Colour       string   `json:"colour"`
	TotalUnits   int      `json:"total_units"`
	SharePct     float64  `json:"share_pct"`
	YoYGrowthPct *float64 `json:"yoy_growth_pct"`
}

// SeasonalPattern is the averaged demand profile of one calendar month.
type SeasonalPattern struct {
	Month           int     `json:"month"`
	MonthName       string  `json:"month_name"`
	AvgUnits        float64 `json:"avg_units"`
	SeasonalFactor  float64 `json:"seasonal_factor"`
	IsFestiveMonth  bool    `json:"is_festive_month"`
	IsMarriageMonth bool    `json:"is_marriage_month"`
	IsMonsoonMonth  bool    `json:"is_monsoon_month"`
}

// DashboardSummary is the landing-page aggregate.
type DashboardSummary struct {
	YTDUnits            int              `json:"ytd_units"`
	YTDRevenue          float64          `json:"ytd_revenue"`
	YoYGrowthPct        float64          `json:"yoy_growth_pct"`
	TopSKU              string           `json:"top_sku"`
	TopModel            string           `json:"top_model"`
	TopColour           string           `json:"top_colour"`
	ForecastAccuracyPct float64          `json:"forecast_accuracy_pct"`
	MonthlyTrend        []MoMPoint       `json:"monthly_trend"`
	SKURankings         []SKUPerformance `json:"sku_rankings"`
	ActiveAlerts        int              `json:"active_alerts"`
}

// DateRange bounds a dataset in invoice-date terms.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// UploadSummary describes an accepted sales upload.
type UploadSummary struct {
	TotalRows    int       `json:"total_rows"`
	DateRange    DateRange `json:"date_range"`
	UniqueSKUs   int       `json:"unique_skus"`
	UniqueModels int       `json:"unique_models"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// DatasetStatus reports what the sales store currently holds.
type DatasetStatus struct {
	TotalRecords    int        `json:"total_records"`
	Source          string     `json:"source"`
	UploadedRecords int        `json:"uploaded_records"`
	SampleRecords   int        `json:"sample_records"`
	LastUpload      *time.Time `json:"last_upload"`
}

// StockUploadResult reports the outcome of a stock inventory upload.
type StockUploadResult struct {
	Status           string   `json:"status"`
	Filename         string   `json:"filename"`
	RowsInserted     int      `json:"rows_inserted"`
	RowsSkipped      int      `json:"rows_skipped"`
	ReplacedExisting bool     `json:"replaced_existing"`
	Errors           []string `json:"errors"`
}

// StockSummary is the aggregate view of uploaded inventory.
type StockSummary struct {
	TotalSKUs    int  `json:"total_skus"`
	TotalUnits   int  `json:"total_units"`
	HasStockData bool `json:"has_stock_data"`
}
