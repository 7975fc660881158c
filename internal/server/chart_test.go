package server

import (
	"bytes"
	"testing"

	"github.com/marketscope/niss/internal/models"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47}

func TestRenderComponentChart(t *testing.T) {
	result := &models.NISSResult{
		Score:      62.5,
		Confidence: models.ConfidenceMedium,
		Components: models.ComponentScores{
			PriceAction:       70,
			NewsImpact:        65,
			TechnicalMomentum: 55,
			OptionsFlow:       35,
			RelativeStrength:  50,
			VolumeAnalysis:    60,
		},
		Metadata: models.ResultMetadata{Symbol: "AAPL"},
	}

	png, err := renderComponentChart(result)
	if err != nil {
		t.Fatalf("renderComponentChart failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Error("output is not a PNG")
	}
}

func TestRenderComponentChart_RejectsErrorResult(t *testing.T) {
	if _, err := renderComponentChart(nil); err == nil {
		t.Error("expected error for nil result")
	}

	errResult := &models.NISSResult{Confidence: models.ConfidenceError}
	if _, err := renderComponentChart(errResult); err == nil {
		t.Error("expected error for ERROR result")
	}
}
