// backend-go/internal/forecast/forecaster.go
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// Horizon bounds shared by the API and the CLIs.
const (
	MinHorizonDays     = 7
	MaxHorizonDays     = 120
	DefaultHorizonDays = 60

	// summaryCutoffDays splits the 30-day bucket out of a longer run.
	summaryCutoffDays = 30

	// Trend factors outside this band are treated as data artefacts.
	minTrendFactor = 0.8
	maxTrendFactor = 1.3
)

// Confidence interval shape: starts at ±20% and widens to ±35% at the
// horizon's end.
const (
	ciBase   = 0.20
	ciSpread = 0.15
)

// Festival impact labels for forecast summaries.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// Forecaster projects daily demand per SKU with a multiplicative model:
// base velocity shaped by month-of-year seasonality, a linear annual trend
// ramp and the festival calendar.
type Forecaster struct {
	cal *calendar.Calendar
}

// New builds a Forecaster over the given festival calendar.
func New(cal *calendar.Calendar) *Forecaster {
	return &Forecaster{cal: cal}
}

// ForecastSKU projects one SKU day by day over [start, start+horizonDays).
func (f *Forecaster) ForecastSKU(sku domain.SKU, stats domain.SKUBaseStats, start time.Time, horizonDays int) []domain.ForecastPoint {
	start = calendar.Midnight(start)
	trend := math.Min(maxTrendFactor, math.Max(minTrendFactor, stats.TrendFactor))

	points := make([]domain.ForecastPoint, 0, horizonDays)
	for d := 0; d < horizonDays; d++ {
		date := start.AddDate(0, 0, d)

		// 1. Month-of-year demand shape.
		seasonal := f.cal.SeasonalFactor(date.Month())

		// 2. Annual trend, ramped linearly across the horizon.
		trendMult := 1 + (trend-1)*(float64(d)/365.0)

		// 3. Festival ramp or tail in effect that day.
		festMult, festName := f.cal.Multiplier(date)

		predicted := stats.DailyAvg * seasonal * trendMult * festMult

		// 4. Interval widens with distance from the anchor date.
		ci := ciBase + (float64(d)/float64(horizonDays))*ciSpread

		points = append(points, domain.ForecastPoint{
			Date:              date,
			SKUCode:           sku.Code,
			ModelName:         sku.ModelName,
			Variant:           sku.Variant,
			Colour:            sku.Colour,
			PredictedQuantity: round2(predicted),
			ConfidenceLower:   round2(math.Max(0, predicted*(1-ci))),
			ConfidenceUpper:   round2(predicted * (1 + ci)),
			FestivalBoost:     festMult,
			FestivalName:      festName,
			ForecastMethod:    domain.ForecastMethodSeasonalTrend,
		})
	}

	return points
}

// Run forecasts every SKU in the frame and concatenates the results in the
// frame's first-seen SKU order. An empty frame yields an empty slice.
func (f *Forecaster) Run(frame *analytics.Frame, start time.Time, horizonDays int) []domain.ForecastPoint {
	order, groups := frame.GroupBySKU()

	points := []domain.ForecastPoint{}
	for _, sku := range order {
		points = append(points, f.ForecastSKU(sku, BaseStats(groups[sku]), start, horizonDays)...)
	}

	return points
}

// Summarise collapses forecast points into per-SKU totals: a 30-day bucket,
// the full-horizon total, the peak day and a festival impact label. Sorted
// by the full-horizon total, largest first.
func (f *Forecaster) Summarise(points []domain.ForecastPoint, start time.Time) []domain.SKUForecastSummary {
	start = calendar.Midnight(start)
	cutoff := start.AddDate(0, 0, summaryCutoffDays)

	type agg struct {
		sku      domain.SKU
		total30  float64
		total60  float64
		peakDay  time.Time
		peakQty  float64
		maxBoost float64
	}

	order := []string{}
	aggs := make(map[string]*agg)
	for _, p := range points {
		a, ok := aggs[p.SKUCode]
		if !ok {
			a = &agg{sku: domain.SKU{Code: p.SKUCode, ModelName: p.ModelName, Variant: p.Variant, Colour: p.Colour}}
			aggs[p.SKUCode] = a
			order = append(order, p.SKUCode)
		}
		a.total60 += p.PredictedQuantity
		if !p.Date.After(cutoff) {
			a.total30 += p.PredictedQuantity
		}
		if p.PredictedQuantity > a.peakQty || a.peakDay.IsZero() {
			a.peakQty = p.PredictedQuantity
			a.peakDay = p.Date
		}
		if p.FestivalBoost > a.maxBoost {
			a.maxBoost = p.FestivalBoost
		}
	}

	out := make([]domain.SKUForecastSummary, 0, len(order))
	for _, code := range order {
		a := aggs[code]
		out = append(out, domain.SKUForecastSummary{
			SKUCode:          a.sku.Code,
			ModelName:        a.sku.ModelName,
			Variant:          a.sku.Variant,
			Colour:           a.sku.Colour,
			TotalForecast30d: round1(a.total30),
			TotalForecast60d: round1(a.total60),
			PeakDay:          a.peakDay,
			FestivalImpact:   impactLabel(a.maxBoost),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalForecast60d > out[j].TotalForecast60d })

	return out
}

func impactLabel(maxBoost float64) string {
	switch {
	case maxBoost > 1.3:
		return ImpactHigh
	case maxBoost > 1.1:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
