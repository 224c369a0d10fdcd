// backend-go/internal/alerts/engine.go
package alerts

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

const (
	festivalScanDays     = 45
	festivalAlertDays    = 21
	festivalUrgentDays   = 7
	marriageApproachDays = 30
	slowMoverHighCount   = 5
	maxNamedSlowMovers   = 3
	topGrowthCutoffPct   = 20.0
)

// Engine derives advisory alerts from the festival calendar and current
// sales shape. Alerts are rebuilt per request, never stored.
type Engine struct {
	cal *calendar.Calendar
	th  analytics.Thresholds
}

func New(cal *calendar.Calendar, th analytics.Thresholds) *Engine {
	return &Engine{cal: cal, th: th}
}

// Generate runs every rule in a fixed order and returns the alerts sorted
// high to low priority. IDs follow generation order, so they are stable
// within a priority band but not contiguous across bands.
func (e *Engine) Generate(frame *analytics.Frame, now time.Time) []domain.Alert {
	today := calendar.Midnight(now)
	alerts := make([]domain.Alert, 0, 8)
	nextID := 1
	add := func(a domain.Alert) {
		a.ID = nextID
		a.CreatedAt = today
		nextID++
		alerts = append(alerts, a)
	}

	for _, fest := range e.cal.Upcoming(today, festivalScanDays) {
		if fest.DaysAway > festivalAlertDays {
			continue
		}
		priority := domain.PriorityMedium
		if fest.DaysAway <= festivalUrgentDays {
			priority = domain.PriorityHigh
		}
		add(domain.Alert{
			AlertType: "festival_approaching",
			Priority:  priority,
			Title:     fmt.Sprintf("%s in %d days!", fest.Name, fest.DaysAway),
			Message: fmt.Sprintf(
				"%s is %d days away. Expected demand uplift: +%d%%. "+
					"Ensure adequate stock is dispatched now to cover the %d-day pre-festival buying window.",
				fest.Name, fest.DaysAway, fest.ImpactPct, fest.PreWindowDays),
			RelatedFestival: fest.Name,
			ActionRequired:  true,
		})
	}

	if season := e.cal.ActiveMarriageSeason(today); season != nil {
		add(domain.Alert{
			AlertType: "marriage_season",
			Priority:  domain.PriorityMedium,
			Title:     fmt.Sprintf("Marriage Season Active – %s Season", season.Season),
			Message: fmt.Sprintf(
				"Wedding season is currently active. Expect +%d%% demand uplift for scooters and premium bikes. "+
					"High-demand colours: %s.",
				season.UpliftPct, strings.Join(firstN(season.RecommendedColours, 3), ", ")),
			RelatedFestival: "Marriage Season",
			ActionRequired:  true,
		})
	} else if next := e.cal.NextMarriageSeason(today); next != nil && next.DaysAway <= marriageApproachDays {
		add(domain.Alert{
			AlertType: "marriage_season_approaching",
			Priority:  domain.PriorityMedium,
			Title:     fmt.Sprintf("Marriage Season Approaching (%d days)", next.DaysAway),
			Message: fmt.Sprintf(
				"%s marriage season starts in %d days. Plan dispatch for: %s.",
				next.Season, next.DaysAway, strings.Join(firstN(next.RecommendedColours, 3), ", ")),
			RelatedFestival: "Marriage Season",
			ActionRequired:  true,
		})
	}

	perf := frame.SKUPerformance(e.th)

	var slow []domain.SKUPerformance
	for _, s := range perf {
		if s.IsSlowMoving {
			slow = append(slow, s)
		}
	}
	if len(slow) > 0 {
		names := make([]string, 0, maxNamedSlowMovers)
		for _, s := range firstNPerf(slow, maxNamedSlowMovers) {
			names = append(names, s.ModelName+" "+s.Colour)
		}
		suffix := ""
		if len(slow) > maxNamedSlowMovers {
			suffix = " and more"
		}
		priority := domain.PriorityMedium
		if len(slow) >= slowMoverHighCount {
			priority = domain.PriorityHigh
		}
		add(domain.Alert{
			AlertType: "slow_moving_inventory",
			Priority:  priority,
			Title:     fmt.Sprintf("%d Slow-Moving SKU(s) Detected", len(slow)),
			Message: fmt.Sprintf(
				"The following SKUs show low sales velocity: %s%s. "+
					"Consider promotional pricing or reducing dispatch quantities to avoid dead stock.",
				strings.Join(names, ", "), suffix),
			ActionRequired: true,
		})
	}

	if len(perf) > 0 {
		top := perf[0]
		if top.YoYGrowthPct != nil && *top.YoYGrowthPct > topGrowthCutoffPct {
			growth := *top.YoYGrowthPct
			add(domain.Alert{
				AlertType: "high_growth_sku",
				Priority:  domain.PriorityLow,
				Title:     fmt.Sprintf("🚀 %s %s Growing Fast (+%.1f%% YoY)", top.ModelName, top.Colour, growth),
				Message: fmt.Sprintf(
					"%s %s is your fastest growing SKU this year with +%.1f%% YoY growth. Ensure sufficient dispatch.",
					top.ModelName, top.Colour, growth),
				SKUCode: top.SKUCode,
			})
		}
	}

	switch today.Month() {
	case time.November, time.December, time.January:
		add(domain.Alert{
			AlertType: "year_end_clearance",
			Priority:  domain.PriorityMedium,
			Title:     "Year-End Clearance Opportunity",
			Message: "Financial year-end approaching. Dealers typically offer year-end schemes. " +
				"Identify slow-moving variants for promotional clearance to free working capital.",
			ActionRequired: true,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return priorityRank(alerts[i].Priority) < priorityRank(alerts[j].Priority)
	})

	return alerts
}

// Critical returns only the high-priority subset.
func (e *Engine) Critical(frame *analytics.Frame, now time.Time) []domain.Alert {
	out := make([]domain.Alert, 0)
	for _, a := range e.Generate(frame, now) {
		if a.Priority == domain.PriorityHigh {
			out = append(out, a)
		}
	}
	return out
}

// Count tallies alerts per priority band for the dashboard badge.
func (e *Engine) Count(frame *analytics.Frame, now time.Time) domain.AlertCounts {
	counts := domain.AlertCounts{}
	for _, a := range e.Generate(frame, now) {
		counts.Total++
		switch a.Priority {
		case domain.PriorityHigh:
			counts.High++
		case domain.PriorityMedium:
			counts.Medium++
		case domain.PriorityLow:
			counts.Low++
		}
	}
	return counts
}

func priorityRank(p string) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func firstN(vals []string, n int) []string {
	if len(vals) <= n {
		return vals
	}
	return vals[:n]
}

func firstNPerf(vals []domain.SKUPerformance, n int) []domain.SKUPerformance {
	if len(vals) <= n {
		return vals
	}
	return vals[:n]
}
