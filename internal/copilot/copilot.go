// backend-go/internal/copilot/copilot.go
package copilot

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
)

const historyYears = 4

var suggestedQuestions = []string{
	"How much should I dispatch next month?",
	"What was the Diwali spike over the last 3 years?",
	"Which colour sells best during Navratri?",
	"Which are my slowest moving SKUs?",
	"What is the marriage season forecast?",
	"Show me top performing models this year",
	"Which SKUs have overstock risk?",
	"What is the impact of fuel price increase?",
}

// Service answers free-text questions by routing them to the analytics,
// forecast and dispatch engines and rendering a markdown reply.
type Service struct {
	cal     *calendar.Calendar
	fc      *forecast.Forecaster
	planner *dispatch.Planner
	th      analytics.Thresholds
}

func New(cal *calendar.Calendar, fc *forecast.Forecaster, planner *dispatch.Planner, th analytics.Thresholds) *Service {
	return &Service{cal: cal, fc: fc, planner: planner, th: th}
}

// SuggestedQuestions returns the starter prompts shown in an empty chat.
func SuggestedQuestions() []string {
	out := make([]string, len(suggestedQuestions))
	copy(out, suggestedQuestions)
	return out
}

// Answer routes the question by intent. Calendar-facing answers (festivals,
// marriage season) key off the supplied clock; data-facing answers key off
// the sales history itself.
func (s *Service) Answer(frame *analytics.Frame, inventory []domain.StockItem, now time.Time, message string) domain.CopilotResponse {
	switch Classify(message) {
	case IntentDispatch:
		return s.dispatchAnswer(frame, inventory, now)
	case IntentFestival:
		return s.festivalAnswer(now, message)
	case IntentColour:
		return s.colourAnswer(frame, message)
	case IntentMarriage:
		return s.marriageAnswer(now)
	case IntentSlowMovers, IntentRisk:
		return s.slowMoversAnswer(frame)
	case IntentTopPerformers:
		return s.topPerformersAnswer(frame)
	case IntentForecast:
		return s.forecastAnswer(frame, now)
	case IntentYoY:
		return s.yoyAnswer(frame)
	case IntentFuel:
		return fuelAnswer()
	default:
		return generalAnswer()
	}
}

func (s *Service) dispatchAnswer(frame *analytics.Frame, inventory []domain.StockItem, now time.Time) domain.CopilotResponse {
	recs := s.planner.Plan(frame, s.forecastStart(frame, now), dispatch.DefaultLeadTimeDays, inventory)

	total := 0
	for _, r := range recs {
		total += r.TotalDispatch
	}
	top := limit(recs, 5)

	lines := []string{
		"**Dispatch Recommendation for Next 30 Days**\n",
		fmt.Sprintf("Total units to dispatch across all SKUs: **%s**\n", humanize.Comma(int64(total))),
		"\nTop priority SKUs:\n",
	}
	for _, r := range top {
		emoji := "🟢"
		switch r.RiskType {
		case domain.RiskUnderstock:
			emoji = "🔴"
		case domain.RiskOverstock:
			emoji = "🟡"
		}
		lines = append(lines, fmt.Sprintf("%s **%s %s** (%s): %d units | Risk: %s",
			emoji, r.ModelName, r.Colour, r.SKUCode, r.TotalDispatch, r.RiskType))
	}
	lines = append(lines, "\n\n*Use the Dispatch Planner tab for full SKU-wise breakdown.*")

	return domain.CopilotResponse{
		Answer:    strings.Join(lines, "\n"),
		Data:      map[string]interface{}{"recommendations": top, "total_dispatch": total},
		ChartType: "dispatch_table",
		SuggestedFollowups: []string{
			"Which SKUs are at understock risk?",
			"Show me working capital impact",
			"What is the festival adjustment for next month?",
		},
	}
}

func (s *Service) festivalAnswer(now time.Time, message string) domain.CopilotResponse {
	if name := FestivalName(message); name != "" {
		if history := s.cal.ImpactHistory(name); len(history) > 0 {
			if len(history) > historyYears {
				history = history[len(history)-historyYears:]
			}
			lines := []string{fmt.Sprintf("**%s – Historical Sales Impact**\n", name)}
			for _, h := range history {
				lines = append(lines, fmt.Sprintf("• %d: Festival date %s | Expected uplift: **%d%%**",
					h.Year, h.Date.Format("02 Jan"), h.ImpactPct))
			}
			lines = append(lines, "\n*Demand typically ramps up 14–21 days before the festival.*")

			return domain.CopilotResponse{
				Answer:    strings.Join(lines, "\n"),
				Data:      map[string]interface{}{"festival": name, "history": history},
				ChartType: "festival_bar",
				SuggestedFollowups: []string{
					fmt.Sprintf("Which colour sells best during %s?", name),
					fmt.Sprintf("How much extra stock for %s?", name),
					"Show upcoming festivals",
				},
			}
		}
	}

	upcoming := limit(s.cal.Upcoming(calendar.Midnight(now), 90), 6)
	lines := []string{"**Upcoming Festivals & Expected Impact**\n"}
	for _, f := range upcoming {
		lines = append(lines, fmt.Sprintf("• **%s** – %s (%d days away) | Impact: +%d%%",
			f.Name, f.Date.Format("02 Jan 2006"), f.DaysAway, f.ImpactPct))
	}

	return domain.CopilotResponse{
		Answer:             strings.Join(lines, "\n"),
		Data:               map[string]interface{}{"upcoming": upcoming},
		ChartType:          "timeline",
		SuggestedFollowups: []string{"Show Diwali spike history", "Marriage season forecast"},
	}
}

func (s *Service) colourAnswer(frame *analytics.Frame, message string) domain.CopilotResponse {
	colours := limit(frame.ColourAnalysis(), 8)

	lines := []string{"**Colour-wise Sales Analysis**\n"}
	if name := FestivalName(message); name != "" {
		lines = append(lines, fmt.Sprintf("\n*During %s, bright colours (Red, White, Blue) typically see higher demand.*\n", name))
	}
	for _, c := range colours {
		yoy := "N/A%"
		if c.YoYGrowthPct != nil {
			if *c.YoYGrowthPct > 0 {
				yoy = fmt.Sprintf("+%.1f%%", *c.YoYGrowthPct)
			} else {
				yoy = fmt.Sprintf("%.1f%%", *c.YoYGrowthPct)
			}
		}
		lines = append(lines, fmt.Sprintf("• %s: %s units (%.1f%%) | YoY: %s",
			c.Colour, humanize.Comma(int64(c.TotalUnits)), c.SharePct, yoy))
	}

	return domain.CopilotResponse{
		Answer:             strings.Join(lines, "\n"),
		Data:               map[string]interface{}{"colours": colours},
		ChartType:          "colour_pie",
		SuggestedFollowups: []string{"Which colour is growing fastest?", "Top SKU by colour"},
	}
}

func (s *Service) marriageAnswer(now time.Time) domain.CopilotResponse {
	info := s.cal.NextMarriageSeason(calendar.Midnight(now))

	lines := []string{"**Marriage Season Intelligence**\n"}
	resp := domain.CopilotResponse{
		ChartType: "marriage_timeline",
		SuggestedFollowups: []string{
			"Which colours sell best in marriage season?",
			"How much extra stock should I keep for marriage season?",
		},
	}
	if info != nil {
		lines = append(lines,
			fmt.Sprintf("Next marriage season: **%s** (in ~%d days)\n", info.Season, info.DaysAway),
			fmt.Sprintf("Expected sales uplift: **+%d%%**\n", info.UpliftPct),
			fmt.Sprintf("Recommended colours to stock: %s", strings.Join(info.RecommendedColours, ", ")),
			fmt.Sprintf("Vehicle type demand: %s", strings.Join(info.RecommendedTypes, ", ")),
			"\n*Scooters see higher demand during marriage season (gifting pattern).*",
		)
		resp.Data = info
	} else {
		lines = append(lines, "No upcoming marriage season window detected in the next 30 days.")
	}
	resp.Answer = strings.Join(lines, "\n")

	return resp
}

func (s *Service) slowMoversAnswer(frame *analytics.Frame) domain.CopilotResponse {
	slow := limit(frame.SlowMovers(s.th), 8)

	lines := []string{"**Slow-Moving SKU Alert**\n"}
	if len(slow) > 0 {
		lines = append(lines, fmt.Sprintf("Found **%d slow-moving SKUs**:\n", len(slow)))
		for _, m := range slow {
			lines = append(lines, fmt.Sprintf("• %s %s (%s): %.1f units/month | Dead stock risk: %d%%",
				m.ModelName, m.Colour, m.SKUCode, m.AvgMonthlyUnits, int(m.DeadStockRisk*100)))
		}
		lines = append(lines, "\n*Recommendation: Reduce dispatch for these SKUs and run promotional campaigns.*")
	} else {
		lines = append(lines, "No slow-moving SKUs detected in current data.")
	}

	return domain.CopilotResponse{
		Answer:             strings.Join(lines, "\n"),
		Data:               map[string]interface{}{"slow_movers": slow},
		ChartType:          "risk_table",
		SuggestedFollowups: []string{"Which SKUs have overstock risk?", "Show dispatch recommendations"},
	}
}

func (s *Service) topPerformersAnswer(frame *analytics.Frame) domain.CopilotResponse {
	top := limit(frame.SKUPerformance(s.th), 8)

	lines := []string{"**Top Performing SKUs**\n"}
	for i, p := range top {
		line := fmt.Sprintf("%d. **%s %s** (%s): %s units",
			i+1, p.ModelName, p.Colour, p.SKUCode, humanize.Comma(int64(p.TotalUnits)))
		if p.YoYGrowthPct != nil && *p.YoYGrowthPct > 0 {
			line += fmt.Sprintf(" +%.1f%%", *p.YoYGrowthPct)
		}
		lines = append(lines, line)
	}

	return domain.CopilotResponse{
		Answer:             strings.Join(lines, "\n"),
		Data:               map[string]interface{}{"top_performers": top},
		ChartType:          "ranking_bar",
		SuggestedFollowups: []string{"Show YoY growth trend", "Which models should I dispatch more of?"},
	}
}

func (s *Service) forecastAnswer(frame *analytics.Frame, now time.Time) domain.CopilotResponse {
	start := s.forecastStart(frame, now)
	points := s.fc.Run(frame, start, forecast.DefaultHorizonDays)
	summaries := limit(s.fc.Summarise(points, start), 8)

	lines := []string{"**60-Day Forecast Summary**\n"}
	for _, sm := range summaries {
		lines = append(lines, fmt.Sprintf("• **%s %s**: %.0f units (30d) | %.0f units (60d) | Festival impact: %s",
			sm.ModelName, sm.Colour, sm.TotalForecast30d, sm.TotalForecast60d, sm.FestivalImpact))
	}

	return domain.CopilotResponse{
		Answer:             strings.Join(lines, "\n"),
		Data:               map[string]interface{}{"forecast": summaries},
		ChartType:          "forecast_line",
		SuggestedFollowups: []string{"Show dispatch plan based on forecast", "What-if Diwali shifts 10 days?"},
	}
}

func (s *Service) yoyAnswer(frame *analytics.Frame) domain.CopilotResponse {
	yoy := frame.YoY()
	if len(yoy) > 12 {
		yoy = yoy[len(yoy)-12:]
	}

	return domain.CopilotResponse{
		Answer:             "Fetching YoY analysis...\n\nUse the **Sales Analytics** tab for the interactive YoY chart.",
		Data:               yoy,
		ChartType:          "yoy_line",
		SuggestedFollowups: []string{"Which month has highest growth?", "Show top performers"},
	}
}

func fuelAnswer() domain.CopilotResponse {
	return domain.CopilotResponse{
		Answer: "**Fuel Price Impact Simulation**\n\n" +
			"A 5% increase in fuel price typically reduces two-wheeler demand by ~1.5%.\n" +
			"Premium bikes (>₹1L) see less impact than budget commuters.\n\n" +
			"Use the **What-If Simulator** in the Forecast tab for detailed analysis.",
		SuggestedFollowups: []string{"Run what-if for fuel price +5%", "Show demand forecast"},
	}
}

func generalAnswer() domain.CopilotResponse {
	return domain.CopilotResponse{
		Answer: "I'm your **Two-Wheeler Sales Intelligence Copilot**. I can help with:\n\n" +
			"• 📦 Dispatch planning & recommendations\n" +
			"• 🎆 Festival impact & Diwali/Navratri analysis\n" +
			"• 🎨 Colour & variant demand analysis\n" +
			"• 💒 Marriage season stock planning\n" +
			"• 📈 YoY/MoM growth trends\n" +
			"• ⚠️ Slow-moving stock alerts\n\n" +
			"Try asking: *'How much should I dispatch next month?'*",
		SuggestedFollowups: append([]string(nil), suggestedQuestions[:4]...),
	}
}

// forecastStart anchors projections to the day after the newest sale so a
// stale demo dataset still produces a full horizon.
func (s *Service) forecastStart(frame *analytics.Frame, now time.Time) time.Time {
	if ref, ok := frame.ReferenceDate(); ok {
		return ref.AddDate(0, 0, 1)
	}
	return calendar.Midnight(now)
}

func limit[T any](vals []T, n int) []T {
	if len(vals) <= n {
		return vals
	}
	return vals[:n]
}
