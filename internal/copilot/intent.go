// backend-go/internal/copilot/intent.go
package copilot

import "strings"

// Intent is the resolved topic of a copilot question.
type Intent string

const (
	IntentDispatch      Intent = "dispatch"
	IntentFestival      Intent = "festival"
	IntentColour        Intent = "colour"
	IntentMarriage      Intent = "marriage"
	IntentSlowMovers    Intent = "slow_movers"
	IntentTopPerformers Intent = "top_performers"
	IntentRisk          Intent = "risk"
	IntentForecast      Intent = "forecast"
	IntentYoY           Intent = "yoy"
	IntentFuel          Intent = "fuel"
	IntentGeneral       Intent = "general"
)

// intentRules are evaluated in order; the first group with a keyword hit
// wins. Order matters: "dispatch order" must not fall through to the
// festival group, and "overstock risk" must resolve before "forecast".
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentDispatch, []string{"dispatch", "order", "recommend", "how much"}},
	{IntentFestival, []string{"diwali", "navratri", "onam", "pongal", "festival", "spike", "festiv"}},
	{IntentColour, []string{"colour", "color"}},
	{IntentMarriage, []string{"marriage", "wedding", "muhurat", "shaadi"}},
	{IntentSlowMovers, []string{"slow", "dead stock", "dead-stock", "slow-mov"}},
	{IntentTopPerformers, []string{"top", "best", "rank", "performance", "highest"}},
	{IntentRisk, []string{"risk", "overstock", "under"}},
	{IntentForecast, []string{"forecast", "predict", "next month", "future"}},
	{IntentYoY, []string{"yoy", "year", "growth", "trend"}},
	{IntentFuel, []string{"fuel", "petrol", "diesel"}},
}

// Classify maps a free-text question to an intent by keyword scan.
func Classify(message string) Intent {
	msg := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// festivalNames maps the names users type to their display form. The
// display form is also what the calendar's impact history matches on.
var festivalNames = []struct {
	match   string
	display string
}{
	{"diwali", "Diwali"},
	{"dhanteras", "Dhanteras"},
	{"navratri", "Navratri"},
	{"dussehra", "Dussehra"},
	{"onam", "Onam"},
	{"pongal", "Pongal"},
	{"akshaya tritiya", "Akshaya Tritiya"},
	{"eid", "Eid"},
	{"holi", "Holi"},
	{"bhai dooj", "Bhai Dooj"},
}

// FestivalName pulls a known festival out of the question, or "".
func FestivalName(message string) string {
	msg := strings.ToLower(message)
	for _, f := range festivalNames {
		if strings.Contains(msg, f.match) {
			return f.display
		}
	}
	return ""
}
