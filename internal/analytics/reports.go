// backend-go/internal/analytics/reports.go
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// Thresholds tunes slow-mover and dead-stock classification.
type Thresholds struct {
	// SlowMonthlyUnits: a SKU averaging fewer units per month is a
	// slow-mover candidate.
	SlowMonthlyUnits float64
	// SlowTotalMultiple: the candidate is confirmed when lifetime units
	// stay under avg*multiple, i.e. it sold in only a couple of months.
	SlowTotalMultiple float64
	// DeadStockDenominator scales dead-stock risk: 1 - avg/denominator.
	DeadStockDenominator float64
}

// DefaultThresholds returns the tuning used in production.
func DefaultThresholds() Thresholds {
	return Thresholds{SlowMonthlyUnits: 5, SlowTotalMultiple: 3, DeadStockDenominator: 10}
}

// Month classifications used by seasonal reports.
var (
	festiveMonths  = map[time.Month]bool{time.March: true, time.October: true, time.November: true, time.December: true}
	marriageMonths = map[time.Month]bool{time.February: true, time.March: true, time.April: true, time.May: true, time.November: true, time.December: true}
	monsoonMonths  = map[time.Month]bool{time.June: true, time.July: true, time.August: true}
)

// YoY returns monthly totals with growth against the same month a year
// earlier, chronologically sorted.
func (f *Frame) YoY() []domain.YoYPoint {
	keys, totals := f.monthlySeries()

	out := make([]domain.YoYPoint, 0, len(keys))
	for _, k := range keys {
		t := totals[k]
		p := domain.YoYPoint{
			Year:    k.year,
			Month:   int(k.month),
			Units:   t.units,
			Revenue: round2(t.revenue),
		}
		if prev, ok := totals[monthKey{k.year - 1, k.month}]; ok {
			p.GrowthPct = growthPct(float64(t.units), float64(prev.units))
		}
		out = append(out, p)
	}

	return out
}

// MoM returns the trailing `months` calendar months with month-over-month
// growth computed inside that window. The first row has no baseline.
func (f *Frame) MoM(months int) []domain.MoMPoint {
	keys, totals := f.monthlySeries()
	if months > 0 && len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	out := make([]domain.MoMPoint, 0, len(keys))
	for i, k := range keys {
		t := totals[k]
		p := domain.MoMPoint{
			Year:    k.year,
			Month:   int(k.month),
			Units:   t.units,
			Revenue: round2(t.revenue),
		}
		if i > 0 {
			prev := totals[keys[i-1]]
			p.MoMGrowthPct = growthPct(float64(t.units), float64(prev.units))
		}
		out = append(out, p)
	}

	return out
}

// SKUPerformance scores every SKU: lifetime totals, growth, slow-mover and
// dead-stock classification. Sorted by lifetime units, best first.
func (f *Frame) SKUPerformance(th Thresholds) []domain.SKUPerformance {
	order, groups := f.GroupBySKU()

	refYear := f.ref.Year()
	curMonth := monthKey{f.ref.Year(), f.ref.Month()}
	prevMonth := monthKey{f.ref.Year(), f.ref.Month() - 1}
	if f.ref.Month() == time.January {
		prevMonth = monthKey{f.ref.Year() - 1, time.December}
	}

	out := make([]domain.SKUPerformance, 0, len(order))
	for _, sku := range order {
		var units int
		var revenue float64
		months := make(map[monthKey]bool)
		unitsByYear := make(map[int]int)
		unitsByMonth := make(map[monthKey]int)
		for _, r := range groups[sku] {
			units += r.QuantitySold
			revenue += float64(r.QuantitySold) * r.UnitPrice
			k := monthKey{r.InvoiceDate.Year(), r.InvoiceDate.Month()}
			months[k] = true
			unitsByYear[r.InvoiceDate.Year()] += r.QuantitySold
			unitsByMonth[k] += r.QuantitySold
		}

		distinct := len(months)
		if distinct < 1 {
			distinct = 1
		}
		avg := float64(units) / float64(distinct)

		p := domain.SKUPerformance{
			SKUCode:         sku.Code,
			ModelName:       sku.ModelName,
			Variant:         sku.Variant,
			Colour:          sku.Colour,
			TotalUnits:      units,
			TotalRevenue:    round2(revenue),
			AvgMonthlyUnits: round2(avg),
			IsSlowMoving:    float64(units) < avg*th.SlowTotalMultiple && avg < th.SlowMonthlyUnits,
			DeadStockRisk:   round2(math.Max(0, 1-avg/th.DeadStockDenominator)),
		}
		if prev := unitsByYear[refYear-1]; prev > 0 {
			p.YoYGrowthPct = growthPct(float64(unitsByYear[refYear]), float64(prev))
		}
		if prev := unitsByMonth[prevMonth]; prev > 0 {
			p.MoMGrowthPct = growthPct(float64(unitsByMonth[curMonth]), float64(prev))
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalUnits > out[j].TotalUnits })

	return out
}

// SlowMovers filters SKUPerformance down to the flagged SKUs.
func (f *Frame) SlowMovers(th Thresholds) []domain.SKUPerformance {
	out := []domain.SKUPerformance{}
	for _, p := range f.SKUPerformance(th) {
		if p.IsSlowMoving {
			out = append(out, p)
		}
	}

	return out
}

// ColourAnalysis aggregates demand per colour with market share and YoY
// growth, sorted by units.
func (f *Frame) ColourAnalysis() []domain.ColourStats {
	order := []string{}
	units := make(map[string]int)
	unitsByYear := make(map[string]map[int]int)
	var grand int
	for _, r := range f.records {
		if _, seen := units[r.Colour]; !seen {
			order = append(order, r.Colour)
			unitsByYear[r.Colour] = make(map[int]int)
		}
		units[r.Colour] += r.QuantitySold
		unitsByYear[r.Colour][r.InvoiceDate.Year()] += r.QuantitySold
		grand += r.QuantitySold
	}

	refYear := f.ref.Year()
	out := make([]domain.ColourStats, 0, len(order))
	for _, colour := range order {
		s := domain.ColourStats{Colour: colour, TotalUnits: units[colour]}
		if grand > 0 {
			s.SharePct = round1(float64(units[colour]) / float64(grand) * 100)
		}
		if prev := unitsByYear[colour][refYear-1]; prev > 0 {
			s.YoYGrowthPct = growthPct(float64(unitsByYear[colour][refYear]), float64(prev))
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalUnits > out[j].TotalUnits })

	return out
}

// SeasonalPatterns averages each calendar month across the observed years
// and normalises against the overall monthly mean.
func (f *Frame) SeasonalPatterns() []domain.SeasonalPattern {
	keys, totals := f.monthlySeries()

	byMonth := make(map[time.Month][]int)
	for _, k := range keys {
		byMonth[k.month] = append(byMonth[k.month], totals[k].units)
	}

	avgs := make(map[time.Month]float64, len(byMonth))
	var overall float64
	for m, vals := range byMonth {
		var sum int
		for _, v := range vals {
			sum += v
		}
		avgs[m] = float64(sum) / float64(len(vals))
		overall += avgs[m]
	}
	if len(avgs) > 0 {
		overall /= float64(len(avgs))
	}

	out := make([]domain.SeasonalPattern, 0, len(avgs))
	for m := time.January; m <= time.December; m++ {
		avg, ok := avgs[m]
		if !ok {
			continue
		}
		factor := 1.0
		if overall > 0 {
			factor = avg / overall
		}
		out = append(out, domain.SeasonalPattern{
			Month:           int(m),
			MonthName:       m.String()[:3],
			AvgUnits:        round1(avg),
			SeasonalFactor:  round2(factor),
			IsFestiveMonth:  festiveMonths[m],
			IsMarriageMonth: marriageMonths[m],
			IsMonsoonMonth:  monsoonMonths[m],
		})
	}

	return out
}

// Dashboard assembles the landing-page aggregate. ActiveAlerts is left at
// zero here; the service layer fills it from the alert engine.
func (f *Frame) Dashboard(th Thresholds) domain.DashboardSummary {
	s := domain.DashboardSummary{
		ForecastAccuracyPct: 87.4, // placeholder until realised-vs-forecast tracking lands
		MonthlyTrend:        []domain.MoMPoint{},
		SKURankings:         []domain.SKUPerformance{},
	}
	if f.Empty() {
		return s
	}

	refYear := f.ref.Year()
	prevCut := f.ref.AddDate(-1, 0, 0)

	var prevUnits int
	skuUnits := make(map[string]int)
	modelUnits := make(map[string]int)
	colourUnits := make(map[string]int)
	var skuOrder, modelOrder, colourOrder []string
	for _, r := range f.records {
		switch r.InvoiceDate.Year() {
		case refYear:
			s.YTDUnits += r.QuantitySold
			s.YTDRevenue += float64(r.QuantitySold) * r.UnitPrice
		case refYear - 1:
			if !r.InvoiceDate.After(prevCut) {
				prevUnits += r.QuantitySold
			}
		}

		if _, seen := skuUnits[r.SKUCode]; !seen {
			skuOrder = append(skuOrder, r.SKUCode)
		}
		skuUnits[r.SKUCode] += r.QuantitySold
		if _, seen := modelUnits[r.ModelName]; !seen {
			modelOrder = append(modelOrder, r.ModelName)
		}
		modelUnits[r.ModelName] += r.QuantitySold
		if _, seen := colourUnits[r.Colour]; !seen {
			colourOrder = append(colourOrder, r.Colour)
		}
		colourUnits[r.Colour] += r.QuantitySold
	}

	s.YTDRevenue = round2(s.YTDRevenue)
	if prevUnits > 0 {
		s.YoYGrowthPct = round1((float64(s.YTDUnits) - float64(prevUnits)) / float64(prevUnits) * 100)
	}

	s.TopSKU = topOf(skuOrder, skuUnits)
	s.TopModel = topOf(modelOrder, modelUnits)
	s.TopColour = topOf(colourOrder, colourUnits)

	s.MonthlyTrend = f.MoM(12)
	rankings := f.SKUPerformance(th)
	if len(rankings) > 10 {
		rankings = rankings[:10]
	}
	s.SKURankings = rankings

	return s
}

// topOf returns the key with the highest total, first-seen winning ties.
func topOf(order []string, totals map[string]int) string {
	best := ""
	bestUnits := -1
	for _, k := range order {
		if totals[k] > bestUnits {
			best = k
			bestUnits = totals[k]
		}
	}

	return best
}

// growthPct computes (cur-prev)/prev as a rounded percentage. Returns nil
// when prev is zero, so degenerate ratios serialise as null.
func growthPct(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := round1((cur - prev) / prev * 100)

	return &v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
