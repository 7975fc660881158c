package niss

import (
	"strings"
	"time"

	"github.com/marketscope/niss/internal/models"
)

// Headline keywords that move the relevance score. High-impact terms are
// worth 12 points each, medium-impact 7.
var (
	highImpactKeywords = []string{
		"earnings", "revenue", "profit", "loss", "merger", "acquisition",
		"fda", "approval", "recall", "lawsuit", "bankruptcy", "dividend",
	}
	mediumImpactKeywords = []string{
		"upgrade", "downgrade", "target", "partnership", "deal", "ceo",
		"guidance", "forecast", "outlook", "expansion", "growth",
	}
)

// credibilityEntry maps a source-name substring to its multiplier. The
// table is checked in order so higher-tier outlets win ties.
type credibilityEntry struct {
	substr     string
	multiplier float64
}

var credibilityTable = []credibilityEntry{
	{"reuters", 1.2},
	{"bloomberg", 1.2},
	{"wall street journal", 1.15},
	{"wsj", 1.15},
	{"financial times", 1.15},
	{"cnbc", 1.0},
	{"marketwatch", 1.0},
	{"yahoo", 0.85},
	{"seeking alpha", 0.8},
	{"motley fool", 0.75},
}

// defaultCredibility is deliberately below the neutral 1.0 so unverified
// low-tier sources are penalized rather than treated as average.
const defaultCredibility = 0.7

// undatedDecay is the weight for articles with no timestamp: moderately
// stale, never zero, so undated but relevant news is not fully discarded.
const undatedDecay = 0.5

// SourceCredibility returns the reliability multiplier for a news outlet
// via case-insensitive substring match against a fixed table.
func SourceCredibility(source string) float64 {
	name := strings.ToLower(strings.TrimSpace(source))
	if name == "" {
		return defaultCredibility
	}
	for _, entry := range credibilityTable {
		if strings.Contains(name, entry.substr) {
			return entry.multiplier
		}
	}
	return defaultCredibility
}

// TimeDecay returns the influence weight of an article given its age in
// hours. Fresh news dominates; anything older than three days is floored
// at 0.3.
func TimeDecay(ageHours float64) float64 {
	switch {
	case ageHours < 1:
		return 1.0
	case ageHours < 6:
		return 0.9
	case ageHours < 24:
		return 0.7
	case ageHours < 72:
		return 0.5
	default:
		return 0.3
	}
}

// HeadlineRelevance scores how relevant a headline is to the symbol:
// 40 base, +30 for a symbol mention, plus keyword bonuses, clamped [0,100].
func HeadlineRelevance(symbol, headline string) float64 {
	relevance := 40.0
	lower := strings.ToLower(headline)

	if symbol != "" && strings.Contains(lower, strings.ToLower(symbol)) {
		relevance += 30
	}
	for _, kw := range highImpactKeywords {
		if strings.Contains(lower, kw) {
			relevance += 12
		}
	}
	for _, kw := range mediumImpactKeywords {
		if strings.Contains(lower, kw) {
			relevance += 7
		}
	}

	return clampRange(relevance, 0, 100)
}

// decayWeight computes the time-decay factor for one article relative to
// the engine clock. Undated articles get the conservative default weight.
func decayWeight(now time.Time, published time.Time) float64 {
	if published.IsZero() {
		return undatedDecay
	}
	age := now.Sub(published).Hours()
	if age < 0 {
		age = 0
	}
	return TimeDecay(age)
}

// newsImpact aggregates per-article scores into a credibility- and
// recency-weighted average. Each article contributes
// (relevance + sentiment×25) × credibility × decay; the aggregate divides
// by the sum of credibility×decay weights. Empty news is neutral.
func (e *Engine) newsImpact(symbol string, news []models.NewsItem) float64 {
	if len(news) == 0 {
		return 50
	}

	now := e.now()
	var weightedSum, weightTotal float64

	for _, item := range news {
		relevance := HeadlineRelevance(symbol, item.Headline)
		sentimentImpact := item.Sentiment * 25
		weight := SourceCredibility(item.Source) * decayWeight(now, item.PublishedAt)

		weightedSum += (relevance + sentimentImpact) * weight
		weightTotal += weight
	}

	if weightTotal == 0 {
		return 50
	}
	return clampComponent(weightedSum / weightTotal)
}
