package niss

import "github.com/marketscope/niss/internal/models"

// Regime adjustment bounds
const (
	regimeMin = -20.0
	regimeMax = 20.0
)

// RegimeAdjustment computes the ±20 corrective term reflecting broad market
// conditions, applied after component weighting. A nil context is fully
// neutral and returns 0.
func RegimeAdjustment(m *models.MarketContext, components models.ComponentScores) float64 {
	if m == nil {
		return 0
	}
	adjustment := 0.0

	// Volatility: punish scoring into a fearful tape, reward a calm one
	if m.Volatility == models.VolatilityHigh && m.VIXLevel > 30 {
		adjustment -= 10
	}
	if m.Volatility == models.VolatilityLow && m.VIXLevel < 15 {
		adjustment += 5
	}

	// Trend: full credit only when price action and relative strength agree
	switch m.Trend {
	case models.TrendBullish:
		if components.PriceAction > 60 && components.RelativeStrength > 60 {
			adjustment += 10
		} else {
			adjustment += 5
		}
	case models.TrendBearish:
		if components.PriceAction < 40 && components.RelativeStrength < 40 {
			adjustment -= 10
		} else {
			adjustment -= 5
		}
	}

	switch m.Breadth {
	case models.BreadthAdvancing:
		adjustment += 3
	case models.BreadthDeclining:
		adjustment -= 3
	}

	return clampRange(adjustment, regimeMin, regimeMax)
}
