package domain

import "time"

// ForecastMethodSeasonalTrend names the only forecasting method currently
// implemented: multiplicative seasonal decomposition with trend and
// festival factors.
const ForecastMethodSeasonalTrend = "seasonal_trend"

// Stock sources for dispatch planning.
const (
	StockSourceUploaded  = "uploaded"
	StockSourceEstimated = "estimated"
)

// Risk classifications for dispatch recommendations.
const (
	RiskUnderstock = "understock"
	RiskOverstock  = "overstock"
	RiskNeutral    = "neutral"
)

// SKUBaseStats holds the per-SKU inputs of the forecast model. Recomputed
// from the sales history on every run, never cached.
type SKUBaseStats struct {
	DailyAvg    float64 `json:"daily_avg"`
	TrendFactor float64 `json:"trend_factor"`
	AvgPrice    float64 `json:"avg_price"`
}

// ForecastPoint is the predicted demand of one SKU on one future day.
type ForecastPoint struct {
	Date              time.Time `json:"date"`
	SKUCode           string    `json:"sku_code"`
	ModelName         string    `json:"model_name"`
	Variant           string    `json:"variant"`
	Colour            string    `json:"colour"`
	PredictedQuantity float64   `json:"predicted_quantity"`
	ConfidenceLower   float64   `json:"confidence_lower"`
	ConfidenceUpper   float64   `json:"confidence_upper"`
	FestivalBoost     float64   `json:"festival_boost"`
	FestivalName      string    `json:"festival_name,omitempty"`
	ForecastMethod    string    `json:"forecast_method"`
}

// SKUForecastSummary collapses a forecast run into per-SKU totals.
type SKUForecastSummary struct {
	SKUCode          string    `json:"sku_code"`
	ModelName        string    `json:"model_name"`
	Variant          string    `json:"variant"`
	Colour           string    `json:"colour"`
	TotalForecast30d float64   `json:"total_forecast_30d"`
	TotalForecast60d float64   `json:"total_forecast_60d"`
	PeakDay          time.Time `json:"peak_day"`
	FestivalImpact   string    `json:"festival_impact"`
}

// StockEstimate is the on-hand quantity the planner assumes for a SKU,
// either from uploaded inventory or estimated from recent sales velocity.
type StockEstimate struct {
	SKUCode      string `json:"sku_code"`
	CurrentStock int    `json:"current_stock"`
	Source       string `json:"source"`
}

// DispatchRecommendation is the planner's order advice for one SKU.
type DispatchRecommendation struct {
	SKUCode              string  `json:"sku_code"`
	ModelName            string  `json:"model_name"`
	Variant              string  `json:"variant"`
	Colour               string  `json:"colour"`
	CurrentStock         int     `json:"current_stock"`
	StockSource          string  `json:"stock_source"`
	ForecastUnits        float64 `json:"forecast_units"`
	RecommendedQuantity  int     `json:"recommended_quantity"`
	BufferStock          int     `json:"buffer_stock"`
	TotalDispatch        int     `json:"total_dispatch"`
	RiskScore            float64 `json:"risk_score"`
	RiskType             string  `json:"risk_type"`
	WorkingCapitalImpact float64 `json:"working_capital_impact"`
	FestivalFactor       float64 `json:"festival_factor"`
	UnitPrice            float64 `json:"unit_price"`
	Notes                string  `json:"notes"`
}

// RiskScore is the slim per-SKU risk view of a dispatch plan.
type RiskScore struct {
	SKUCode   string  `json:"sku_code"`
	ModelName string  `json:"model_name"`
	Colour    string  `json:"colour"`
	RiskScore float64 `json:"risk_score"`
	RiskType  string  `json:"risk_type"`
}

// WorkingCapitalSummary aggregates the capital committed by a dispatch plan.
type WorkingCapitalSummary struct {
	TotalDispatchValue  float64  `json:"total_dispatch_value"`
	TotalBufferValue    float64  `json:"total_buffer_value"`
	DeadStockExposure   float64  `json:"dead_stock_exposure"`
	CapitalRotationDays float64  `json:"capital_rotation_days"`
	HighRiskSKUs        []string `json:"high_risk_skus"`
	OverstockCount      int      `json:"overstock_count"`
	UnderstockCount     int      `json:"understock_count"`
}

// WhatIfRequest asks the simulator to perturb the baseline forecast.
type WhatIfRequest struct {
	Scenario  string   `json:"scenario" binding:"required"`
	Parameter float64  `json:"parameter"`
	SKUCodes  []string `json:"sku_codes,omitempty"`
}

// WhatIfResult is the outcome of one scenario simulation.
type WhatIfResult struct {
	Scenario      string   `json:"scenario"`
	Parameter     float64  `json:"parameter"`
	BaselineUnits float64  `json:"baseline_units"`
	AdjustedUnits float64  `json:"adjusted_units"`
	DeltaUnits    float64  `json:"delta_units"`
	DeltaPct      float64  `json:"delta_pct"`
	AffectedSKUs  []string `json:"affected_skus"`
	Notes         string   `json:"notes"`
}
