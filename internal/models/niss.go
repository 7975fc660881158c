package models

import "time"

// Confidence is the qualitative reliability label attached to a score
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceError  Confidence = "ERROR"
)

// Trade actions produced by the setup generator and signal classifier
const (
	ActionStrongBuy  = "STRONG BUY"
	ActionBuy        = "BUY"
	ActionHold       = "HOLD"
	ActionSell       = "SELL"
	ActionStrongSell = "STRONG SELL"
	ActionHoldMixed  = "HOLD - MIXED SIGNALS"
)

// ComponentScores holds the six sub-scores, each bounded [0,100]
type ComponentScores struct {
	PriceAction       float64 `json:"priceAction"`
	NewsImpact        float64 `json:"newsImpact"`
	TechnicalMomentum float64 `json:"technicalMomentum"`
	OptionsFlow       float64 `json:"optionsFlow"`
	RelativeStrength  float64 `json:"relativeStrength"`
	VolumeAnalysis    float64 `json:"volumeAnalysis"`
}

// ComponentValue pairs a component name with its score
type ComponentValue struct {
	Name  string
	Value float64
}

// Ordered returns the components in their canonical order. Deterministic
// iteration matters for reasoning strings and confidence counting.
func (c ComponentScores) Ordered() []ComponentValue {
	return []ComponentValue{
		{"priceAction", c.PriceAction},
		{"newsImpact", c.NewsImpact},
		{"technicalMomentum", c.TechnicalMomentum},
		{"optionsFlow", c.OptionsFlow},
		{"relativeStrength", c.RelativeStrength},
		{"volumeAnalysis", c.VolumeAnalysis},
	}
}

// ResultMetadata carries provenance information for one scoring call
type ResultMetadata struct {
	Version          string             `json:"version"`
	Symbol           string             `json:"symbol"`
	ProcessingTimeMs float64            `json:"processingTimeMs"`
	GeneratedAt      time.Time          `json:"timestamp"`
	Weights          map[string]float64 `json:"componentWeights,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// NISSResult is the output of one scoring call. Score is clamped to
// [-100,100]; RegimeAdjustment to [-20,20]. Confidence ERROR means the
// snapshot failed validation and Score carries no information.
type NISSResult struct {
	Score            float64         `json:"score"`
	Components       ComponentScores `json:"components"`
	Confidence       Confidence      `json:"confidence"`
	RegimeAdjustment float64         `json:"regimeAdjustment"`
	Metadata         ResultMetadata  `json:"metadata"`
}

// IsError reports whether the result represents a validation failure
func (r *NISSResult) IsError() bool {
	return r.Confidence == ConfidenceError
}

// PriceTarget is one take-profit level of a trade setup
type PriceTarget struct {
	Level       int     `json:"level"`
	Price       float64 `json:"price"`
	Probability float64 `json:"probability"`
}

// TradeSetup is the actionable recommendation derived from a NISSResult
// and the current price. StopLoss is nil for HOLD.
type TradeSetup struct {
	Action     string        `json:"action"`
	EntryPrice float64       `json:"entryPrice"`
	StopLoss   *float64      `json:"stopLoss"`
	Targets    []PriceTarget `json:"targets"`
	RiskReward float64       `json:"riskReward"`
	Confidence Confidence    `json:"confidence"`
	Reasoning  string        `json:"reasoning"`
}

// QuickSignal is the coarse signal produced by the score × price-change
// classifier, used where a full NISSResult is not available.
type QuickSignal struct {
	Signal     string     `json:"signal"`
	Confidence Confidence `json:"confidence"`
}

// ScreenEntry is one symbol's outcome within a screen run
type ScreenEntry struct {
	Symbol string       `json:"symbol"`
	Result *NISSResult  `json:"result"`
	Setup  *TradeSetup  `json:"setup,omitempty"`
	Signal *QuickSignal `json:"signal,omitempty"`
	Error  string       `json:"error,omitempty"` // gateway fetch failure
}

// ScreenRecord stores one completed screen run for history
type ScreenRecord struct {
	ID        string        `json:"id"`
	Symbols   []string      `json:"symbols"`
	Entries   []ScreenEntry `json:"entries"`
	Skipped   int           `json:"skipped"` // symbols excluded for ERROR confidence or fetch failure
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}
