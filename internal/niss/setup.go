package niss

import (
	"fmt"
	"strings"

	"github.com/marketscope/niss/internal/models"
)

// setupProfile holds the level/probability ladder for one action tier
type setupProfile struct {
	action     string
	stopFactor float64
	targetPcts [3]float64
	probs      [3]float64
	riskReward float64
}

var (
	strongBuyProfile = setupProfile{
		action:     models.ActionStrongBuy,
		stopFactor: 0.95,
		targetPcts: [3]float64{0.04, 0.08, 0.12},
		probs:      [3]float64{0.8, 0.6, 0.4},
		riskReward: 2.4,
	}
	buyProfile = setupProfile{
		action:     models.ActionBuy,
		stopFactor: 0.96,
		targetPcts: [3]float64{0.03, 0.06, 0.09},
		probs:      [3]float64{0.7, 0.5, 0.3},
		riskReward: 2.25,
	}
	strongSellProfile = setupProfile{
		action:     models.ActionStrongSell,
		stopFactor: 1.05,
		targetPcts: [3]float64{-0.04, -0.08, -0.12},
		probs:      [3]float64{0.8, 0.6, 0.4},
		riskReward: 2.4,
	}
	sellProfile = setupProfile{
		action:     models.ActionSell,
		stopFactor: 1.04,
		targetPcts: [3]float64{-0.03, -0.06, -0.09},
		probs:      [3]float64{0.7, 0.5, 0.3},
		riskReward: 2.25,
	}
)

// GenerateTradeSetup derives actionable levels from a scored result and the
// current price. ERROR results and scores inside the ±60 band produce a
// HOLD with no stop and no targets.
func GenerateTradeSetup(currentPrice float64, result *models.NISSResult) *models.TradeSetup {
	var profile *setupProfile

	if !result.IsError() {
		switch {
		case result.Score > 75 && result.Confidence == models.ConfidenceHigh:
			profile = &strongBuyProfile
		case result.Score > 60 && result.Confidence != models.ConfidenceLow:
			profile = &buyProfile
		case result.Score < -75 && result.Confidence == models.ConfidenceHigh:
			profile = &strongSellProfile
		case result.Score < -60 && result.Confidence != models.ConfidenceLow:
			profile = &sellProfile
		}
	}

	if profile == nil {
		return &models.TradeSetup{
			Action:     models.ActionHold,
			EntryPrice: currentPrice,
			StopLoss:   nil,
			Targets:    []models.PriceTarget{},
			RiskReward: 1,
			Confidence: result.Confidence,
			Reasoning:  buildReasoning(models.ActionHold, result),
		}
	}

	stop := currentPrice * profile.stopFactor
	targets := make([]models.PriceTarget, 0, 3)
	for i, pct := range profile.targetPcts {
		targets = append(targets, models.PriceTarget{
			Level:       i + 1,
			Price:       currentPrice * (1 + pct),
			Probability: profile.probs[i],
		})
	}

	return &models.TradeSetup{
		Action:     profile.action,
		EntryPrice: currentPrice,
		StopLoss:   &stop,
		Targets:    targets,
		RiskReward: profile.riskReward,
		Confidence: result.Confidence,
		Reasoning:  buildReasoning(profile.action, result),
	}
}

// buildReasoning lists the decisively strong/weak components behind the
// action, e.g. "BUY signal based on: Strong newsImpact, Weak optionsFlow
// (NISS: 64.2)".
func buildReasoning(action string, result *models.NISSResult) string {
	var parts []string
	for _, cv := range result.Components.Ordered() {
		if cv.Value > 70 {
			parts = append(parts, "Strong "+cv.Name)
		} else if cv.Value < 30 {
			parts = append(parts, "Weak "+cv.Name)
		}
	}

	basis := "balanced components"
	if len(parts) > 0 {
		basis = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s signal based on: %s (NISS: %.1f)", action, basis, result.Score)
}
