package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/marketscope/niss/internal/models"
)

// renderComponentChart renders a PNG bar chart of the six component scores.
// Bars above 60 render green, below 40 red, otherwise gray.
func renderComponentChart(result *models.NISSResult) ([]byte, error) {
	if result == nil || result.IsError() {
		return nil, fmt.Errorf("no scoreable result to chart")
	}

	bars := make([]chart.Value, 0, 6)
	for _, cv := range result.Components.Ordered() {
		color := drawing.ColorFromHex("9ca3af") // gray-400
		if cv.Value > 60 {
			color = drawing.ColorFromHex("16a34a") // green-600
		} else if cv.Value < 40 {
			color = drawing.ColorFromHex("dc2626") // red-600
		}
		bars = append(bars, chart.Value{
			Label: cv.Name,
			Value: cv.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("%s NISS %.1f (%s)", result.Metadata.Symbol, result.Score, result.Confidence),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 90,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// handleScreenChart handles GET /api/screen/chart/{symbol}: a PNG
// component-score chart for one symbol, scored live through the gateway.
func (s *Server) handleScreenChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/screen/chart/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	result, _, err := s.app.Screener.ScoreSymbol(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Scoring failed: %v", err))
		return
	}

	png, err := renderComponentChart(result)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Chart error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
