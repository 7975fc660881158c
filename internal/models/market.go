// Package models defines data structures for the NISS service
package models

import "time"

// StockSnapshot holds the current trading state of one symbol as supplied
// by the Market Data Gateway. Snapshots are caller-owned and never mutated
// by the scoring engine. Optional numeric fields use zero to mean absent.
type StockSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePct     float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	AvgVolume     int64   `json:"avgVolume"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	Open          float64 `json:"open,omitempty"`
	PreviousClose float64 `json:"previousClose,omitempty"`
	SMA20         float64 `json:"sma20,omitempty"`
	SMA50         float64 `json:"sma50,omitempty"`
	SMA200        float64 `json:"sma200,omitempty"`
	High52Week    float64 `json:"high52Week,omitempty"`
	Low52Week     float64 `json:"low52Week,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	MarketCap     float64 `json:"marketCap,omitempty"`
}

// NewsItem represents one news article relevant to a symbol.
// Sentiment is in [-1,1]. A zero PublishedAt means the article is undated
// and receives the conservative 0.5 time-decay weight.
type NewsItem struct {
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	Sentiment   float64   `json:"sentiment"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
	Summary     string    `json:"summary,omitempty"`
}

// BollingerBands holds Bollinger band bounds
type BollingerBands struct {
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// TechnicalIndicators holds optional technical-analysis inputs.
// RSI <= 0 is treated as missing (neutral 50); ADX <= 0 as missing (25).
type TechnicalIndicators struct {
	RSI        float64         `json:"rsi,omitempty"`
	MACD       float64         `json:"macd,omitempty"`
	MACDSignal float64         `json:"macdSignal,omitempty"`
	ADX        float64         `json:"adx,omitempty"`
	Bollinger  *BollingerBands `json:"bollinger,omitempty"`
}

// OptionsMetrics holds optional options-flow inputs. A nil object yields a
// neutral options component.
type OptionsMetrics struct {
	PutCallRatio    float64 `json:"putCallRatio"`
	CallVolume      int64   `json:"callVolume,omitempty"`
	PutVolume       int64   `json:"putVolume,omitempty"`
	CallOI          int64   `json:"callOI,omitempty"`
	PutOI           int64   `json:"putOI,omitempty"`
	UnusualActivity bool    `json:"unusualActivity,omitempty"`
}

// VolatilityLevel classifies broad market volatility
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "LOW"
	VolatilityNormal VolatilityLevel = "NORMAL"
	VolatilityHigh   VolatilityLevel = "HIGH"
)

// TrendDirection classifies the broad market trend
type TrendDirection string

const (
	TrendBullish TrendDirection = "BULLISH"
	TrendNeutral TrendDirection = "NEUTRAL"
	TrendBearish TrendDirection = "BEARISH"
)

// MarketBreadth classifies advance/decline breadth
type MarketBreadth string

const (
	BreadthAdvancing MarketBreadth = "ADVANCING"
	BreadthMixed     MarketBreadth = "MIXED"
	BreadthDeclining MarketBreadth = "DECLINING"
)

// SectorPerformance holds one sector's aggregate move
type SectorPerformance struct {
	ChangePct float64 `json:"changePercent"`
}

// MarketContext is a broad market regime snapshot. A nil context yields a
// zero regime adjustment and a neutral relative-strength component.
type MarketContext struct {
	SPYChange         float64                      `json:"spyChange"`
	Volatility        VolatilityLevel              `json:"volatility,omitempty"`
	Trend             TrendDirection               `json:"trend,omitempty"`
	Breadth           MarketBreadth                `json:"breadth,omitempty"`
	VIXLevel          float64                      `json:"vixLevel,omitempty"`
	SectorPerformance map[string]SectorPerformance `json:"sectorPerformance,omitempty"`
}
