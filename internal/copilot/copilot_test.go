package copilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"How much should I dispatch next month?", IntentDispatch},
		{"any recommendation?", IntentDispatch},
		{"reorder stock", IntentDispatch},
		{"What was the Diwali spike over the last 3 years?", IntentFestival},
		{"Which colour sells best during Navratri?", IntentFestival}, // festival outranks colour
		{"Which colour sells best this month?", IntentColour},
		{"color split please", IntentColour},
		{"What is the marriage season forecast?", IntentMarriage},
		{"wedding muhurat dates", IntentMarriage},
		{"Which are my slowest moving SKUs?", IntentSlowMovers},
		{"show dead stock", IntentSlowMovers},
		{"Show me top performing models this year", IntentTopPerformers},
		{"Which SKUs have overstock risk?", IntentRisk},
		{"predict demand", IntentForecast},
		{"what does the future look like", IntentForecast},
		{"Compare growth vs last year", IntentYoY},
		{"What is the impact of fuel price increase?", IntentFuel},
		{"hello", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestFestivalName(t *testing.T) {
	assert.Equal(t, "Diwali", FestivalName("show the DIWALI spike"))
	assert.Equal(t, "Akshaya Tritiya", FestivalName("impact of akshaya tritiya?"))
	assert.Equal(t, "Bhai Dooj", FestivalName("bhai dooj demand"))
	assert.Equal(t, "", FestivalName("nothing festive here"))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(code string, day time.Time, qty int) domain.SaleRecord {
	return domain.SaleRecord{
		InvoiceDate:  day,
		SKUCode:      code,
		ModelName:    "Model " + code,
		Variant:      "Standard",
		Colour:       "Black",
		QuantitySold: qty,
		UnitPrice:    80000,
	}
}

func fixtureFrame() *analytics.Frame {
	return analytics.NewFrame([]domain.SaleRecord{
		sale("SKU-HOT", date(2023, time.June, 10), 10),
		sale("SKU-HOT", date(2024, time.June, 10), 30),
		sale("SKU-SLG", date(2024, time.June, 1), 1),
	})
}

func newService() *Service {
	cal := calendar.NewDefault()
	fc := forecast.New(cal)
	return New(cal, fc, dispatch.New(fc), analytics.DefaultThresholds())
}

func TestAnswerGeneral(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "hello")

	assert.Contains(t, got.Answer, "Two-Wheeler Sales Intelligence Copilot")
	assert.Empty(t, got.ChartType)
	assert.Nil(t, got.Data)
	assert.Equal(t, suggestedQuestions[:4], got.SuggestedFollowups)
}

func TestAnswerFuel(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "petrol price hike?")

	assert.Contains(t, got.Answer, "Fuel Price Impact Simulation")
	assert.Contains(t, got.Answer, "reduces two-wheeler demand by ~1.5%")
	assert.Empty(t, got.ChartType)
}

func TestAnswerFestivalHistory(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "Show me the Diwali spike")

	assert.Equal(t, "festival_bar", got.ChartType)
	assert.Contains(t, got.Answer, "**Diwali – Historical Sales Impact**")
	// Last four years of the curated calendar.
	assert.Contains(t, got.Answer, "• 2023: Festival date 12 Nov | Expected uplift: **60%**")
	assert.Contains(t, got.Answer, "• 2026: Festival date 08 Nov")
	assert.NotContains(t, got.Answer, "• 2021:")
	assert.Equal(t, "Which colour sells best during Diwali?", got.SuggestedFollowups[0])
}

func TestAnswerFestivalUpcoming(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "What festivals are coming?")

	assert.Equal(t, "timeline", got.ChartType)
	assert.Contains(t, got.Answer, "**Upcoming Festivals & Expected Impact**")
	assert.Contains(t, got.Answer, "• **Onam** – 27 Aug 2025 (72 days away) | Impact: +35%")
}

func TestAnswerMarriage(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "marriage season plans")

	assert.Equal(t, "marriage_timeline", got.ChartType)
	assert.Contains(t, got.Answer, "Next marriage season: **Winter** (in ~138 days)")
	assert.Contains(t, got.Answer, "Expected sales uplift: **+25%**")
	assert.Contains(t, got.Answer, "Pearl White, Sports Red, Imperial Blue")
	assert.NotNil(t, got.Data)
}

func TestAnswerColour(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "colour analysis")

	assert.Equal(t, "colour_pie", got.ChartType)
	assert.Contains(t, got.Answer, "• Black: 41 units (100.0%) | YoY: +210.0%")
	assert.NotContains(t, got.Answer, "During")
}

func TestAnswerColourWithFestival(t *testing.T) {
	// "colour" never wins over a festival keyword, so exercise the festival
	// note through a message that only matches the colour group.
	got := newService().colourAnswer(fixtureFrame(), "colours for onam")

	assert.Contains(t, got.Answer, "*During Onam, bright colours (Red, White, Blue) typically see higher demand.*")
}

func TestAnswerSlowMovers(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "slow movers?")

	assert.Equal(t, "risk_table", got.ChartType)
	assert.Contains(t, got.Answer, "Found **1 slow-moving SKUs**:")
	assert.Contains(t, got.Answer, "• Model SKU-SLG Black (SKU-SLG): 1.0 units/month | Dead stock risk: 90%")
}

func TestAnswerRiskRoutesToSlowMovers(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "overstock risk?")
	assert.Equal(t, "risk_table", got.ChartType)
}

func TestAnswerTopPerformers(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "top models")

	assert.Equal(t, "ranking_bar", got.ChartType)
	assert.Contains(t, got.Answer, "1. **Model SKU-HOT Black** (SKU-HOT): 40 units +200.0%")
	assert.Contains(t, got.Answer, "2. **Model SKU-SLG Black** (SKU-SLG): 1 units")
}

func TestAnswerForecast(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "predict demand")

	assert.Equal(t, "forecast_line", got.ChartType)
	assert.Contains(t, got.Answer, "**60-Day Forecast Summary**")
	assert.Contains(t, got.Answer, "Model SKU-HOT")
}

func TestAnswerYoY(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "growth vs last year")

	assert.Equal(t, "yoy_line", got.ChartType)
	assert.Contains(t, got.Answer, "Fetching YoY analysis...")
	points, ok := got.Data.([]domain.YoYPoint)
	require.True(t, ok)
	assert.Len(t, points, 2)
}

func TestAnswerDispatch(t *testing.T) {
	got := newService().Answer(fixtureFrame(), nil, date(2025, time.June, 16), "How much should I dispatch?")

	assert.Equal(t, "dispatch_table", got.ChartType)
	assert.Contains(t, got.Answer, "**Dispatch Recommendation for Next 30 Days**")
	assert.Contains(t, got.Answer, "Total units to dispatch across all SKUs:")
	data, ok := got.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "total_dispatch")
	assert.Contains(t, data, "recommendations")
}

func TestSuggestedQuestions(t *testing.T) {
	got := SuggestedQuestions()
	require.Len(t, got, 8)
	assert.Equal(t, "How much should I dispatch next month?", got[0])

	got[0] = "mutated"
	assert.Equal(t, "How much should I dispatch next month?", SuggestedQuestions()[0])
}
