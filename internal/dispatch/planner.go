// backend-go/internal/dispatch/planner.go
package dispatch

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
)

// Lead time is the gap between placing a dispatch order and stock arriving
// at the dealership. Coverage extends past it so the order also carries the
// following month of demand.
const (
	MinLeadTimeDays     = 7
	MaxLeadTimeDays     = 60
	DefaultLeadTimeDays = 21

	CoverageTailDays = 30
	BufferStockPct   = 0.15

	stockWindowDays     = 30
	stockVelocityFactor = 1.2
	minHeuristicStock   = 2

	overstockCutoff = 0.35
	stockoutCutoff  = 0.30
	boostRiskCutoff = 1.25
	boostNoteCutoff = 1.2

	highRiskCutoff       = 0.6
	maxHighRiskSKUs      = 10
	fallbackRotationDays = 30.0
)

// Planner turns per-SKU demand forecasts into actionable dispatch orders
// with risk classification and working-capital figures.
type Planner struct {
	fc *forecast.Forecaster
}

func New(fc *forecast.Forecaster) *Planner {
	return &Planner{fc: fc}
}

// Plan builds one recommendation per SKU observed in the sales history.
// Uploaded inventory is authoritative for current stock; SKUs without an
// uploaded figure fall back to a velocity estimate so planning still works
// when no stock file was ever provided. Results are sorted by risk,
// riskiest first.
func (p *Planner) Plan(frame *analytics.Frame, start time.Time, leadTimeDays int, inventory []domain.StockItem) []domain.DispatchRecommendation {
	if leadTimeDays <= 0 {
		leadTimeDays = DefaultLeadTimeDays
	}
	coverageDays := leadTimeDays + CoverageTailDays

	points := p.fc.Run(frame, start, coverageDays)
	order, grouped := groupPoints(points)
	stock := resolveStock(frame, inventory)
	prices := avgPriceByCode(frame.Records())

	recs := make([]domain.DispatchRecommendation, 0, len(order))
	for _, sku := range order {
		pts := grouped[sku]

		forecastUnits := 0.0
		peakBoost := 1.0
		for _, pt := range pts {
			forecastUnits += pt.PredictedQuantity
			if pt.FestivalBoost > peakBoost {
				peakBoost = pt.FestivalBoost
			}
		}
		forecastUnits = round2(forecastUnits)

		est, ok := stock[sku.Code]
		if !ok {
			est = domain.StockEstimate{SKUCode: sku.Code, Source: domain.StockSourceEstimated}
		}

		recommended, buffer := orderQuantities(forecastUnits, est.CurrentStock)
		score, riskType := scoreRisk(forecastUnits, est.CurrentStock, peakBoost)
		price := prices[sku.Code]

		recs = append(recs, domain.DispatchRecommendation{
			SKUCode:              sku.Code,
			ModelName:            sku.ModelName,
			Variant:              sku.Variant,
			Colour:               sku.Colour,
			CurrentStock:         est.CurrentStock,
			StockSource:          est.Source,
			ForecastUnits:        forecastUnits,
			RecommendedQuantity:  recommended,
			BufferStock:          buffer,
			TotalDispatch:        recommended,
			RiskScore:            score,
			RiskType:             riskType,
			WorkingCapitalImpact: round2(float64(recommended) * price),
			FestivalFactor:       round2(peakBoost),
			UnitPrice:            round2(price),
			Notes:                buildNotes(peakBoost, riskType),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RiskScore > recs[j].RiskScore
	})

	return recs
}

// WorkingCapital aggregates a recommendation list into the capital exposure
// view shown on the dispatch dashboard.
func (p *Planner) WorkingCapital(frame *analytics.Frame, recs []domain.DispatchRecommendation) domain.WorkingCapitalSummary {
	summary := domain.WorkingCapitalSummary{HighRiskSKUs: []string{}}
	if len(recs) == 0 {
		return summary
	}

	var totalDispatch, totalBuffer, deadStock float64
	for _, r := range recs {
		totalDispatch += r.WorkingCapitalImpact
		totalBuffer += float64(r.BufferStock) * r.UnitPrice
		switch r.RiskType {
		case domain.RiskOverstock:
			deadStock += r.WorkingCapitalImpact
			summary.OverstockCount++
		case domain.RiskUnderstock:
			summary.UnderstockCount++
		}
		if r.RiskScore > highRiskCutoff && len(summary.HighRiskSKUs) < maxHighRiskSKUs {
			summary.HighRiskSKUs = append(summary.HighRiskSKUs, r.SKUCode)
		}
	}

	rotation := fallbackRotationDays
	if !frame.Empty() {
		rotation = totalDispatch / math.Max(1, frame.AvgDailyRevenue())
	}

	summary.TotalDispatchValue = round2(totalDispatch)
	summary.TotalBufferValue = round2(totalBuffer)
	summary.DeadStockExposure = round2(deadStock)
	summary.CapitalRotationDays = round1(rotation)

	return summary
}

// resolveStock merges uploaded inventory over trailing-velocity estimates.
// The estimate assumes roughly 1.2 months of cover on hand for anything
// that sold in the last 30 days.
func resolveStock(frame *analytics.Frame, inventory []domain.StockItem) map[string]domain.StockEstimate {
	out := make(map[string]domain.StockEstimate)

	if ref, ok := frame.ReferenceDate(); ok {
		from := ref.AddDate(0, 0, -stockWindowDays)
		unitsByCode := make(map[string]int)
		for sku, units := range frame.UnitsBetween(from, ref) {
			unitsByCode[sku.Code] += units
		}
		for code, units := range unitsByCode {
			est := int(math.Ceil(float64(units) * stockVelocityFactor))
			if est < minHeuristicStock {
				est = minHeuristicStock
			}
			out[code] = domain.StockEstimate{
				SKUCode:      code,
				CurrentStock: est,
				Source:       domain.StockSourceEstimated,
			}
		}
	}

	for _, item := range inventory {
		out[item.SKUCode] = domain.StockEstimate{
			SKUCode:      item.SKUCode,
			CurrentStock: item.CurrentStock,
			Source:       domain.StockSourceUploaded,
		}
	}

	return out
}

// orderQuantities computes the buffered order size. The buffer sits on top
// of net demand so a stocked-out SKU still lands with headroom.
func orderQuantities(forecastUnits float64, currentStock int) (recommended, buffer int) {
	buffer = int(math.Ceil(forecastUnits * BufferStockPct))
	recommended = int(math.Ceil(forecastUnits)) - currentStock + buffer
	if recommended < 0 {
		recommended = 0
	}
	return recommended, buffer
}

// scoreRisk blends stockout and overstock probabilities with festival
// pressure into a single 0-1 score plus a coarse classification.
func scoreRisk(forecastUnits float64, currentStock int, peakBoost float64) (float64, string) {
	if forecastUnits <= 0 {
		return 0, domain.RiskNeutral
	}

	stock := float64(currentStock)
	stockoutProb := math.Max(0, (forecastUnits-stock)/forecastUnits)
	overstockProb := math.Max(0, (stock-forecastUnits)/math.Max(1, stock))
	festivalRisk := math.Max(0, (peakBoost-1)*0.5)

	score := 0.40*(stockoutProb-overstockProb) +
		0.30*stockoutProb +
		0.20*overstockProb +
		0.10*festivalRisk
	score = math.Min(1, math.Abs(score))

	riskType := domain.RiskNeutral
	switch {
	case overstockProb > overstockCutoff:
		riskType = domain.RiskOverstock
	case stockoutProb > stockoutCutoff || peakBoost > boostRiskCutoff:
		riskType = domain.RiskUnderstock
	}

	return round3(score), riskType
}

func buildNotes(peakBoost float64, riskType string) string {
	var parts []string
	if peakBoost > boostNoteCutoff {
		uplift := int(math.Round((peakBoost - 1) * 100))
		parts = append(parts, fmt.Sprintf("Festival demand boost expected (%d%% uplift)", uplift))
	}
	switch riskType {
	case domain.RiskUnderstock:
		parts = append(parts, "⚠️ Risk of stockout – order urgently")
	case domain.RiskOverstock:
		parts = append(parts, "📦 Current stock may be sufficient – consider reducing dispatch")
	}
	if len(parts) == 0 {
		return "Normal dispatch recommended"
	}
	return strings.Join(parts, " | ")
}

func groupPoints(points []domain.ForecastPoint) ([]domain.SKU, map[domain.SKU][]domain.ForecastPoint) {
	var order []domain.SKU
	grouped := make(map[domain.SKU][]domain.ForecastPoint)
	for _, pt := range points {
		sku := domain.SKU{Code: pt.SKUCode, ModelName: pt.ModelName, Variant: pt.Variant, Colour: pt.Colour}
		if _, ok := grouped[sku]; !ok {
			order = append(order, sku)
		}
		grouped[sku] = append(grouped[sku], pt)
	}
	return order, grouped
}

func avgPriceByCode(records []domain.SaleRecord) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.SKUCode] += r.UnitPrice
		counts[r.SKUCode]++
	}
	out := make(map[string]float64, len(sums))
	for code, sum := range sums {
		out[code] = sum / float64(counts[code])
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
