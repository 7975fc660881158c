package niss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketscope/niss/internal/models"
)

func scoredResult(score float64, confidence models.Confidence) *models.NISSResult {
	return &models.NISSResult{
		Score:      score,
		Confidence: confidence,
		Components: scores(50, 50, 50, 50, 50, 50),
	}
}

func TestGenerateTradeSetup_StrongBuy(t *testing.T) {
	setup := GenerateTradeSetup(100, scoredResult(80, models.ConfidenceHigh))

	assert.Equal(t, models.ActionStrongBuy, setup.Action)
	assert.Equal(t, 100.0, setup.EntryPrice)
	require.NotNil(t, setup.StopLoss)
	assert.InDelta(t, 95.0, *setup.StopLoss, 0.0001)
	require.Len(t, setup.Targets, 3)
	assert.InDelta(t, 104.0, setup.Targets[0].Price, 0.0001)
	assert.InDelta(t, 108.0, setup.Targets[1].Price, 0.0001)
	assert.InDelta(t, 112.0, setup.Targets[2].Price, 0.0001)
	assert.Equal(t, []float64{0.8, 0.6, 0.4}, []float64{
		setup.Targets[0].Probability, setup.Targets[1].Probability, setup.Targets[2].Probability,
	})
	assert.Equal(t, 1, setup.Targets[0].Level)
	assert.Equal(t, 3, setup.Targets[2].Level)
	assert.Equal(t, 2.4, setup.RiskReward)
	assert.Equal(t, models.ConfidenceHigh, setup.Confidence)
}

func TestGenerateTradeSetup_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		confidence models.Confidence
		action     string
		stop       float64
		firstPrice float64
		riskReward float64
	}{
		{"buy on medium confidence", 65, models.ConfidenceMedium, models.ActionBuy, 96, 103, 2.25},
		{"strong score without high confidence stays buy", 80, models.ConfidenceMedium, models.ActionBuy, 96, 103, 2.25},
		{"sell mirror", -65, models.ConfidenceMedium, models.ActionSell, 104, 97, 2.25},
		{"strong sell", -80, models.ConfidenceHigh, models.ActionStrongSell, 105, 96, 2.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := GenerateTradeSetup(100, scoredResult(tt.score, tt.confidence))

			assert.Equal(t, tt.action, setup.Action)
			require.NotNil(t, setup.StopLoss)
			assert.InDelta(t, tt.stop, *setup.StopLoss, 0.0001)
			require.Len(t, setup.Targets, 3)
			assert.InDelta(t, tt.firstPrice, setup.Targets[0].Price, 0.0001)
			assert.Equal(t, tt.riskReward, setup.RiskReward)
		})
	}
}

func TestGenerateTradeSetup_Hold(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		confidence models.Confidence
	}{
		{"low confidence blocks a buy", 65, models.ConfidenceLow},
		{"neutral score", 10, models.ConfidenceMedium},
		{"band edge is not enough", 60, models.ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := GenerateTradeSetup(100, scoredResult(tt.score, tt.confidence))

			assert.Equal(t, models.ActionHold, setup.Action)
			assert.Nil(t, setup.StopLoss)
			assert.Empty(t, setup.Targets)
			assert.Equal(t, 1.0, setup.RiskReward)
		})
	}
}

func TestGenerateTradeSetup_ErrorResultIsHold(t *testing.T) {
	result := scoredResult(90, models.ConfidenceError)
	setup := GenerateTradeSetup(100, result)

	assert.Equal(t, models.ActionHold, setup.Action)
	assert.Nil(t, setup.StopLoss)
	assert.Empty(t, setup.Targets)
}

func TestBuildReasoning(t *testing.T) {
	result := &models.NISSResult{
		Score:      64.2,
		Confidence: models.ConfidenceMedium,
		Components: scores(50, 75, 50, 25, 50, 50),
	}

	setup := GenerateTradeSetup(100, result)
	assert.Equal(t, "BUY signal based on: Strong newsImpact, Weak optionsFlow (NISS: 64.2)", setup.Reasoning)

	balanced := GenerateTradeSetup(100, scoredResult(10, models.ConfidenceLow))
	assert.Equal(t, "HOLD signal based on: balanced components (NISS: 10.0)", balanced.Reasoning)
}
