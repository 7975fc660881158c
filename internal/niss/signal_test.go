package niss

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marketscope/niss/internal/models"
)

func TestDetermineSignal(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		changePct  float64
		signal     string
		confidence models.Confidence
	}{
		{"strong buy confirmed by rally", 76, 3, models.ActionStrongBuy, models.ConfidenceHigh},
		{"strong buy with modest move", 76, 1, models.ActionStrongBuy, models.ConfidenceMedium},
		{"buy with momentum", 65, 1.5, models.ActionBuy, models.ConfidenceHigh},
		{"buy barely positive", 55, 0.5, models.ActionBuy, models.ConfidenceMedium},
		{"strong sell confirmed by drop", -76, -3, models.ActionStrongSell, models.ConfidenceHigh},
		{"strong sell with modest move", -76, -1, models.ActionStrongSell, models.ConfidenceMedium},
		{"sell with momentum", -65, -1.5, models.ActionSell, models.ConfidenceHigh},
		{"sell barely negative", -55, -0.5, models.ActionSell, models.ConfidenceMedium},
		{"bullish score against sharp selloff", 55, -3, models.ActionHoldMixed, models.ConfidenceLow},
		{"bearish score against sharp rally", -55, 3, models.ActionHoldMixed, models.ConfidenceLow},
		{"weak score", 10, 0.1, models.ActionHold, models.ConfidenceLow},
		{"bullish score with mild pullback", 55, -1, models.ActionHold, models.ConfidenceLow},
		{"flat day flat score", 0, 0, models.ActionHold, models.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineSignal(tt.score, tt.changePct)
			assert.Equal(t, tt.signal, got.Signal)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}
