package domain

import "time"

// Alert priorities, ordered highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Alert is a rule-generated advisory. Alerts are rebuilt on every request
// and never persisted.
type Alert struct {
	ID              int       `json:"id"`
	AlertType       string    `json:"alert_type"`
	Priority        string    `json:"priority"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	SKUCode         string    `json:"sku_code,omitempty"`
	RelatedFestival string    `json:"related_festival,omitempty"`
	ActionRequired  bool      `json:"action_required"`
	IsDismissed     bool      `json:"is_dismissed"`
	CreatedAt       time.Time `json:"created_at"`
}

// AlertCounts breaks the active alerts down by priority.
type AlertCounts struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// MarketItem is one curated market-intelligence entry. ImpactScore is a
// signed estimate of the effect on two-wheeler demand.
type MarketItem struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	ImpactScore float64  `json:"impact_score"`
	Source      string   `json:"source"`
	DataDate    string   `json:"data_date"`
	Tags        []string `json:"tags"`
}

// MarriageSeasonStatus reports where the calendar sits relative to the
// wedding-season windows. CurrentSeason is nil outside a window.
type MarriageSeasonStatus struct {
	CurrentlyInSeason bool                `json:"currently_in_season"`
	CurrentSeason     *MarriageSeasonInfo `json:"current_season"`
	NextSeason        *MarriageSeasonInfo `json:"next_season"`
}

// CopilotRequest is a free-text question for the assistant.
type CopilotRequest struct {
	Message string `json:"message" binding:"required"`
}

// CopilotResponse carries the assistant's markdown answer plus structured
// data the frontend can chart.
type CopilotResponse struct {
	Answer             string      `json:"answer"`
	Data               interface{} `json:"data,omitempty"`
	ChartType          string      `json:"chart_type,omitempty"`
	SuggestedFollowups []string    `json:"suggested_followups"`
}
