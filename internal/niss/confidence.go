package niss

import (
	"math"

	"github.com/marketscope/niss/internal/models"
)

// ClassifyConfidence derives the qualitative reliability label from
// component agreement. A strong component is one decisively away from
// neutral (>70 or <30); bullish/bearish count components leaning past
// 60/40. Strong macro distortions (|regime adjustment| > 15) downgrade
// HIGH to MEDIUM so the top label is never reported under heavy regime
// correction.
func ClassifyConfidence(components models.ComponentScores, regimeAdjustment float64) models.Confidence {
	var strong, bullish, bearish int
	for _, cv := range components.Ordered() {
		if cv.Value > 70 || cv.Value < 30 {
			strong++
		}
		if cv.Value > 60 {
			bullish++
		} else if cv.Value < 40 {
			bearish++
		}
	}
	neutral := 6 - bullish - bearish

	level := models.ConfidenceLow
	switch {
	case strong >= 4 && (bullish >= 5 || bearish >= 5):
		level = models.ConfidenceHigh
	case strong >= 3 && (bullish >= 4 || bearish >= 4):
		level = models.ConfidenceMedium
	case strong >= 2 && neutral <= 2:
		level = models.ConfidenceMedium
	}

	if level == models.ConfidenceHigh && math.Abs(regimeAdjustment) > 15 {
		level = models.ConfidenceMedium
	}
	return level
}
