package niss

import (
	"math"

	"github.com/marketscope/niss/internal/models"
)

// Neutral defaults applied when technical inputs are missing
const (
	defaultRSI = 50
	defaultADX = 25
)

const largeCapThreshold = 50e9

// priceAction scores SMA alignment, 52-week range position, and daily
// momentum. Base 50, bounded [0,100].
func (e *Engine) priceAction(s *models.StockSnapshot) float64 {
	score := 50.0

	// SMA alignment
	switch {
	case s.SMA20 > 0 && s.SMA50 > 0 && s.SMA200 > 0 &&
		s.Price > s.SMA20 && s.Price > s.SMA50 && s.Price > s.SMA200:
		score += 20
	case s.SMA20 > 0 && s.SMA50 > 0 && s.Price > s.SMA20 && s.Price > s.SMA50:
		score += 10
	case s.SMA20 > 0 && s.Price > s.SMA20:
		score += 5
	}
	if s.SMA200 > 0 && s.Price < s.SMA200 {
		score -= 15
	}

	// 52-week range position: ±15 at the extremes, linear between
	if s.High52Week > s.Low52Week && s.Low52Week > 0 {
		position := (s.Price - s.Low52Week) / (s.High52Week - s.Low52Week)
		switch {
		case position > 0.9:
			score += 15
		case position < 0.1:
			score -= 15
		default:
			score += ((position - 0.5) / 0.4) * 15
		}
	}

	// Daily momentum: ±15 scaled by |change|/5, capped at a 5% move
	momentum := math.Min(math.Abs(s.ChangePct)/5, 1) * 15
	if s.ChangePct < 0 {
		momentum = -momentum
	}
	score += momentum

	return clampComponent(score)
}

// technicalMomentum scores RSI, MACD-vs-signal, ADX trend strength, and
// Bollinger position. Missing indicators fall back to neutral defaults so
// the component degrades gracefully without the technicals collaborator.
func (e *Engine) technicalMomentum(price float64, t *models.TechnicalIndicators) float64 {
	score := 50.0

	rsi := float64(defaultRSI)
	adx := float64(defaultADX)
	var macd, macdSignal float64
	var bollinger *models.BollingerBands

	if t != nil {
		if t.RSI > 0 {
			rsi = t.RSI
		}
		if t.ADX > 0 {
			adx = t.ADX
		}
		macd = t.MACD
		macdSignal = t.MACDSignal
		bollinger = t.Bollinger
	}

	switch {
	case rsi >= 30 && rsi <= 70:
		score += 15
	case rsi > 70:
		score += 5
	default:
		score -= 10
	}

	// MACD gap relative to signal magnitude, capped at ±15
	if macdSignal != 0 {
		gap := (macd - macdSignal) / math.Abs(macdSignal)
		gap = clampRange(gap, -1, 1)
		score += gap * 15
	}

	switch {
	case adx > 25:
		score += 12.5
	case adx < 15:
		score -= 5
	}

	if bollinger != nil && bollinger.Upper > bollinger.Lower {
		position := (price - bollinger.Lower) / (bollinger.Upper - bollinger.Lower)
		score += (position - 0.5) * 15
	}

	return clampComponent(score)
}

// optionsFlow scores put/call ratio, volume skew, open-interest skew, and
// the unusual-activity flag. Requires the whole object; nil is neutral.
func (e *Engine) optionsFlow(o *models.OptionsMetrics) float64 {
	if o == nil {
		return 50
	}
	score := 50.0

	switch {
	case o.PutCallRatio < 0.7:
		score += 20
	case o.PutCallRatio < 1.0:
		score += 10
	case o.PutCallRatio > 1.3:
		score -= 20
	case o.PutCallRatio > 1.0:
		score -= 10
	}

	if o.CallVolume > 0 && o.PutVolume > 0 {
		ratio := float64(o.CallVolume) / float64(o.PutVolume)
		switch {
		case ratio > 3:
			score += 17.5
		case ratio > 1.5:
			score += 8.75
		case ratio < 0.33:
			score -= 17.5
		case ratio < 0.67:
			score -= 8.75
		}
	}

	if o.CallOI > 0 && o.PutOI > 0 {
		ratio := float64(o.CallOI) / float64(o.PutOI)
		if ratio > 1.5 {
			score += 12.5
		} else if ratio < 0.67 {
			score -= 12.5
		}
	}

	if o.UnusualActivity {
		score += 5
	}

	return clampComponent(score)
}

// relativeStrength scores sector outperformance, market alignment, and
// trend agreement. Without a market context the component is neutral.
func (e *Engine) relativeStrength(s *models.StockSnapshot, m *models.MarketContext) float64 {
	if m == nil {
		return 50
	}
	score := 50.0

	sectorOut := 0.0
	if perf, ok := m.SectorPerformance[s.Sector]; ok {
		sectorOut = s.ChangePct - perf.ChangePct
	}
	switch {
	case sectorOut > 3:
		score += 30
	case sectorOut > 1:
		score += 15
	case sectorOut > 0:
		score += 5
	case sectorOut < -3:
		score -= 30
	case sectorOut < -1:
		score -= 15
	default:
		score -= 5
	}

	alignment := s.ChangePct - m.SPYChange
	switch {
	case alignment > 2:
		score += 20
	case alignment > 0:
		score += 10
	case alignment < -2:
		score -= 20
	default:
		score -= 10
	}

	if (m.Trend == models.TrendBullish && s.ChangePct > 0) ||
		(m.Trend == models.TrendBearish && s.ChangePct < 0) {
		score += 5
	}

	return clampComponent(score)
}

// volumeAnalysis scores relative volume with direction confirmation.
// Requires both volume and average volume; otherwise neutral.
func (e *Engine) volumeAnalysis(s *models.StockSnapshot) float64 {
	if s.Volume <= 0 || s.AvgVolume <= 0 {
		return 50
	}
	score := 50.0

	ratio := float64(s.Volume) / float64(s.AvgVolume)
	switch {
	case ratio > 5:
		score += 35
	case ratio > 3:
		score += 25
	case ratio > 2:
		score += 15
	case ratio > 1.5:
		score += 10
	case ratio < 0.5:
		score -= 20
	case ratio < 0.8:
		score -= 10
	}

	// Direction confirmation only on meaningful volume expansion
	if ratio > 1.5 {
		if s.ChangePct > 0 {
			score += 15
		} else if s.ChangePct < 0 {
			score -= 15
		}
	}

	// Mild volume bumps on mega caps carry less information
	if s.MarketCap > largeCapThreshold && ratio > 1 && ratio < 1.5 {
		score -= 5
	}

	return clampComponent(score)
}
