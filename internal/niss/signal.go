package niss

import "github.com/marketscope/niss/internal/models"

// DetermineSignal combines a raw score with the observed price change into
// a coarse signal + confidence pair. It is the dashboard-layer fallback for
// contexts where a full NISSResult is not available: the price change must
// confirm the score's direction, and a strong score moving against price
// is flagged as mixed rather than trusted.
func DetermineSignal(score, changePct float64) models.QuickSignal {
	switch {
	case score > 75 && changePct > 2:
		return models.QuickSignal{Signal: models.ActionStrongBuy, Confidence: models.ConfidenceHigh}
	case score > 75 && changePct > 0:
		return models.QuickSignal{Signal: models.ActionStrongBuy, Confidence: models.ConfidenceMedium}
	case score > 60 && changePct > 1:
		return models.QuickSignal{Signal: models.ActionBuy, Confidence: models.ConfidenceHigh}
	case score > 50 && changePct > 0:
		return models.QuickSignal{Signal: models.ActionBuy, Confidence: models.ConfidenceMedium}
	case score < -75 && changePct < -2:
		return models.QuickSignal{Signal: models.ActionStrongSell, Confidence: models.ConfidenceHigh}
	case score < -75 && changePct < 0:
		return models.QuickSignal{Signal: models.ActionStrongSell, Confidence: models.ConfidenceMedium}
	case score < -60 && changePct < -1:
		return models.QuickSignal{Signal: models.ActionSell, Confidence: models.ConfidenceHigh}
	case score < -50 && changePct < 0:
		return models.QuickSignal{Signal: models.ActionSell, Confidence: models.ConfidenceMedium}
	case (score > 50 && changePct < -2) || (score < -50 && changePct > 2):
		// Conflicting signal guard: score and tape disagree hard
		return models.QuickSignal{Signal: models.ActionHoldMixed, Confidence: models.ConfidenceLow}
	default:
		return models.QuickSignal{Signal: models.ActionHold, Confidence: models.ConfidenceLow}
	}
}
