// backend-go/internal/forecast/stats.go
package forecast

import (
	"sort"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

const (
	// coldStartDailyAvg seeds SKUs with no sales history so a forecast is
	// still produced for them.
	coldStartDailyAvg = 0.5

	// defaultTrendFactor assumes the market's typical 7% annual growth when
	// the history is too short to measure a trend.
	defaultTrendFactor = 1.07
)

// BaseStats derives the forecast inputs for one SKU from its sales history:
// daily velocity over the observed span, a year-over-year trend factor and
// the mean unit price. Always recomputed, never cached.
func BaseStats(records []domain.SaleRecord) domain.SKUBaseStats {
	if len(records) == 0 {
		return domain.SKUBaseStats{DailyAvg: coldStartDailyAvg, TrendFactor: 1.0}
	}

	var totalUnits int
	var priceSum float64
	minDate, maxDate := records[0].InvoiceDate, records[0].InvoiceDate
	unitsByYear := make(map[int]int)
	for _, r := range records {
		totalUnits += r.QuantitySold
		priceSum += r.UnitPrice
		unitsByYear[r.InvoiceDate.Year()] += r.QuantitySold
		if r.InvoiceDate.Before(minDate) {
			minDate = r.InvoiceDate
		}
		if r.InvoiceDate.After(maxDate) {
			maxDate = r.InvoiceDate
		}
	}

	spanDays := int(maxDate.Sub(minDate).Hours()/24) + 1
	if spanDays < 1 {
		spanDays = 1
	}

	// Trend from the first and last observed years only. Two points keep
	// the estimate stable on sparse dealer data; intermediate years carry
	// too much festival noise to fit anything richer.
	trend := defaultTrendFactor
	years := make([]int, 0, len(unitsByYear))
	for y := range unitsByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) >= 2 {
		first, last := years[0], years[len(years)-1]
		slope := float64(unitsByYear[last]-unitsByYear[first]) / float64(last-first)
		base := float64(unitsByYear[first])
		if base < 1 {
			base = 1
		}
		trend = 1 + slope/base
	}

	return domain.SKUBaseStats{
		DailyAvg:    float64(totalUnits) / float64(spanDays),
		TrendFactor: trend,
		AvgPrice:    priceSum / float64(len(records)),
	}
}
