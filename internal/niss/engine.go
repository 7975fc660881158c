// Package niss implements the News Impact Scoring engine: a deterministic,
// side-effect-free function mapping a stock snapshot plus optional news,
// technical, options, and market-context records to a bounded composite
// score, confidence label, and regime adjustment.
package niss

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/marketscope/niss/internal/models"
)

// EngineVersion stamps every result so consumers can detect changes to the
// weighting scheme.
const EngineVersion = "2.1.0"

// Weights holds the six component weights. The canonical weights sum to 1.
type Weights struct {
	PriceAction       float64
	NewsImpact        float64
	TechnicalMomentum float64
	OptionsFlow       float64
	RelativeStrength  float64
	VolumeAnalysis    float64
}

// DefaultWeights returns the canonical component weighting
func DefaultWeights() Weights {
	return Weights{
		PriceAction:       0.20,
		NewsImpact:        0.25,
		TechnicalMomentum: 0.20,
		OptionsFlow:       0.15,
		RelativeStrength:  0.10,
		VolumeAnalysis:    0.10,
	}
}

// WeightsFromMap applies overrides by component name onto the defaults.
// Unknown names are ignored.
func WeightsFromMap(overrides map[string]float64) Weights {
	w := DefaultWeights()
	for name, v := range overrides {
		switch name {
		case "priceAction":
			w.PriceAction = v
		case "newsImpact":
			w.NewsImpact = v
		case "technicalMomentum":
			w.TechnicalMomentum = v
		case "optionsFlow":
			w.OptionsFlow = v
		case "relativeStrength":
			w.RelativeStrength = v
		case "volumeAnalysis":
			w.VolumeAnalysis = v
		}
	}
	return w
}

// Map returns the weights keyed by component name
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"priceAction":       w.PriceAction,
		"newsImpact":        w.NewsImpact,
		"technicalMomentum": w.TechnicalMomentum,
		"optionsFlow":       w.OptionsFlow,
		"relativeStrength":  w.RelativeStrength,
		"volumeAnalysis":    w.VolumeAnalysis,
	}
}

// ValidationError reports a malformed snapshot. The engine never returns it
// to callers directly; it surfaces as a result with confidence ERROR.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Engine computes NISS scores. Configuration is fixed at construction and
// never mutated, so a single Engine is safe for concurrent use.
type Engine struct {
	weights Weights
	now     func() time.Time
}

// Option configures the engine
type Option func(*Engine)

// WithWeights sets the component weights
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithClock sets the time source used for news age decay
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a scoring engine with the canonical weights
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the engine's component weights
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score computes the composite NISS result for one symbol. All arguments
// except stock are optional; missing collaborators degrade the affected
// components to their neutral defaults. Validation failures are returned as
// a result with Score 0 and Confidence ERROR rather than an error, so batch
// callers can continue past a bad symbol.
func (e *Engine) Score(stock *models.StockSnapshot, news []models.NewsItem, technicals *models.TechnicalIndicators, options *models.OptionsMetrics, market *models.MarketContext) *models.NISSResult {
	start := time.Now()

	if err := validateSnapshot(stock); err != nil {
		return e.errorResult(stock, start, err)
	}

	components := models.ComponentScores{
		PriceAction:       e.priceAction(stock),
		NewsImpact:        e.newsImpact(stock.Symbol, news),
		TechnicalMomentum: e.technicalMomentum(stock.Price, technicals),
		OptionsFlow:       e.optionsFlow(options),
		RelativeStrength:  e.relativeStrength(stock, market),
		VolumeAnalysis:    e.volumeAnalysis(stock),
	}

	w := e.weights
	weighted := components.PriceAction*w.PriceAction +
		components.NewsImpact*w.NewsImpact +
		components.TechnicalMomentum*w.TechnicalMomentum +
		components.OptionsFlow*w.OptionsFlow +
		components.RelativeStrength*w.RelativeStrength +
		components.VolumeAnalysis*w.VolumeAnalysis

	adjustment := RegimeAdjustment(market, components)
	score := clampRange(weighted+adjustment, -100, 100)

	return &models.NISSResult{
		Score:            score,
		Components:       components,
		Confidence:       ClassifyConfidence(components, adjustment),
		RegimeAdjustment: adjustment,
		Metadata:         e.metadata(stock.Symbol, start, ""),
	}
}

func validateSnapshot(stock *models.StockSnapshot) error {
	if stock == nil {
		return &ValidationError{Msg: "stock snapshot is required"}
	}
	if strings.TrimSpace(stock.Symbol) == "" {
		return &ValidationError{Msg: "stock symbol is required"}
	}
	if stock.Price <= 0 {
		return &ValidationError{Msg: fmt.Sprintf("invalid price %.4f for %s", stock.Price, stock.Symbol)}
	}
	return nil
}

func (e *Engine) errorResult(stock *models.StockSnapshot, start time.Time, err error) *models.NISSResult {
	symbol := ""
	if stock != nil {
		symbol = stock.Symbol
	}
	return &models.NISSResult{
		Score:      0,
		Confidence: models.ConfidenceError,
		Metadata:   e.metadata(symbol, start, err.Error()),
	}
}

func (e *Engine) metadata(symbol string, start time.Time, errMsg string) models.ResultMetadata {
	return models.ResultMetadata{
		Version:          EngineVersion,
		Symbol:           symbol,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		GeneratedAt:      e.now(),
		Weights:          e.weights.Map(),
		Error:            errMsg,
	}
}

// clampComponent bounds a component score to [0,100]. NaN and Inf collapse
// to the neutral 50 so a malformed input degrades one component instead of
// poisoning the composite.
func clampComponent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 50
	}
	return clampRange(v, 0, 100)
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
