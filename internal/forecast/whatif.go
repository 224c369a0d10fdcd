// backend-go/internal/forecast/whatif.go
package forecast

import (
	"fmt"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// Scenario names accepted by the simulator.
const (
	ScenarioDiwaliShift      = "diwali_shift"
	ScenarioFuelPrice        = "fuel_price"
	ScenarioCompetitorLaunch = "competitor_launch"
	ScenarioMarriageSeason   = "marriage_season"
)

// Scenario sensitivities, calibrated against the 2021-2024 sample years.
const (
	diwaliShiftStep      = 0.05  // demand change per 30 shifted days
	fuelElasticity       = 0.3   // demand % lost per fuel price %
	competitorImpactStep = 0.12  // demand share lost per impact point
	marriageDayUplift    = 0.015 // demand gained per extra muhurat day

	maxAffectedSKUs = 20
)

// WhatIf applies a named scenario to the aggregate of a forecast run.
// Scenarios are multiplicative on the baseline total; an unrecognised
// scenario passes the baseline through untouched with an explanatory note.
func WhatIf(points []domain.ForecastPoint, req domain.WhatIfRequest) domain.WhatIfResult {
	var filter map[string]bool
	if len(req.SKUCodes) > 0 {
		filter = make(map[string]bool, len(req.SKUCodes))
		for _, code := range req.SKUCodes {
			filter[code] = true
		}
	}

	var baseline float64
	affected := []string{}
	seen := make(map[string]bool)
	for _, p := range points {
		if filter != nil && !filter[p.SKUCode] {
			continue
		}
		baseline += p.PredictedQuantity
		if !seen[p.SKUCode] && len(affected) < maxAffectedSKUs {
			seen[p.SKUCode] = true
			affected = append(affected, p.SKUCode)
		}
	}

	factor := 1.0
	var notes string
	switch req.Scenario {
	case ScenarioDiwaliShift:
		factor = 1 + (req.Parameter/30)*diwaliShiftStep
		direction := "pulled forward"
		if req.Parameter < 0 {
			direction = "pushed later"
		}
		notes = fmt.Sprintf("Diwali shifted %+.0f days → demand %s", req.Parameter, direction)
	case ScenarioFuelPrice:
		factor = 1 - req.Parameter*fuelElasticity/100
		notes = fmt.Sprintf("Fuel price %+.0f%% → estimated demand change: %.1f%%", req.Parameter, -req.Parameter*fuelElasticity)
	case ScenarioCompetitorLaunch:
		factor = 1 - req.Parameter*competitorImpactStep
		notes = fmt.Sprintf("Competitor launch (impact %.0f) → estimated demand drop: %.1f%%", req.Parameter, req.Parameter*competitorImpactStep*100)
	case ScenarioMarriageSeason:
		factor = 1 + req.Parameter*marriageDayUplift
		notes = fmt.Sprintf("%.0f extra marriage muhurat days → uplift: %.1f%%", req.Parameter, req.Parameter*marriageDayUplift*100)
	default:
		notes = "Unknown scenario"
	}

	adjusted := baseline * factor
	deltaPct := 0.0
	if baseline > 0 {
		deltaPct = round1((adjusted - baseline) / baseline * 100)
	}

	return domain.WhatIfResult{
		Scenario:      req.Scenario,
		Parameter:     req.Parameter,
		BaselineUnits: round1(baseline),
		AdjustedUnits: round1(adjusted),
		DeltaUnits:    round1(adjusted - baseline),
		DeltaPct:      deltaPct,
		AffectedSKUs:  affected,
		Notes:         notes,
	}
}
