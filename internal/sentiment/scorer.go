// Package sentiment scores news headlines against weighted keyword lists.
package sentiment

import (
	"strings"

	"ticker-scout/internal/model"
)

// Options holds the keyword lists and label cutoffs.
type Options struct {
	PositiveKeywords []string
	NegativeKeywords []string
	PositiveCutoff   float64 // score above this labels Positive
	NegativeCutoff   float64 // score below this labels Negative
}

// DefaultOptions returns the built-in keyword sets and the standard cutoffs.
func DefaultOptions() Options {
	return Options{
		PositiveKeywords: DefaultPositiveKeywords(),
		NegativeKeywords: DefaultNegativeKeywords(),
		PositiveCutoff:   20,
		NegativeCutoff:   -20,
	}
}

// DefaultPositiveKeywords lists terms that count toward a bullish reading.
func DefaultPositiveKeywords() []string {
	return []string{
		"buy", "bullish", "upgrade", "growth", "profit", "gain", "positive",
		"surge", "jump", "rise", "up", "higher", "strong", "success", "beat",
		"exceed", "outperform", "record",
	}
}

// DefaultNegativeKeywords lists terms that count toward a bearish reading.
func DefaultNegativeKeywords() []string {
	return []string{
		"sell", "bearish", "downgrade", "loss", "negative", "decline", "drop",
		"fall", "down", "lower", "weak", "fail", "miss", "underperform",
		"bankruptcy", "debt", "risk",
	}
}

// Scorer computes an aggregate sentiment over a batch of headlines.
type Scorer struct {
	opts Options
}

// NewScorer builds a scorer. Empty keyword lists in opts fall back to the
// defaults so a partial config cannot silence scoring.
func NewScorer(opts Options) *Scorer {
	if len(opts.PositiveKeywords) == 0 {
		opts.PositiveKeywords = DefaultPositiveKeywords()
	}
	if len(opts.NegativeKeywords) == 0 {
		opts.NegativeKeywords = DefaultNegativeKeywords()
	}
	if opts.PositiveCutoff == 0 && opts.NegativeCutoff == 0 {
		opts.PositiveCutoff = 20
		opts.NegativeCutoff = -20
	}
	return &Scorer{opts: opts}
}

// Score aggregates keyword hits across headlines into a score in [-100, 100]
// and a label. No headlines yields a neutral zero score.
func (s *Scorer) Score(headlines []string) model.Sentiment {
	if len(headlines) == 0 {
		return model.Sentiment{Score: 0, Label: model.SentimentNeutral}
	}

	raw := 0
	for _, h := range headlines {
		raw += headlineScore(h, s.opts)
	}

	// Each headline can plausibly hit a few keywords, so the denominator
	// scales with the batch size rather than the keyword counts.
	denom := 3 * len(headlines)
	if denom < 1 {
		denom = 1
	}
	score := float64(raw) / float64(denom) * 100
	if score > 100 {
		score = 100
	}
	if score < -100 {
		score = -100
	}

	return model.Sentiment{Score: score, Label: s.label(score)}
}

func (s *Scorer) label(score float64) model.SentimentLabel {
	switch {
	case score > s.opts.PositiveCutoff:
		return model.SentimentPositive
	case score < s.opts.NegativeCutoff:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// headlineScore counts keyword containment in a single lowercased headline.
func headlineScore(headline string, opts Options) int {
	lower := strings.ToLower(headline)
	score := 0
	for _, kw := range opts.PositiveKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	for _, kw := range opts.NegativeKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}
	return score
}
