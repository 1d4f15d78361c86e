package model

import "time"

// Action is the trade direction of a recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// SentimentLabel classifies an aggregate headline score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// Sentiment is the headline-polarity score for one symbol.
// Score is roughly in [-100, 100] and derived purely from headline text.
type Sentiment struct {
	Score float64
	Label SentimentLabel
}

// Recommendation is the fused trade signal.
type Recommendation struct {
	Action     Action
	Confidence int // always in [0, 100]
}

// AnalysisResult aggregates everything produced by one trigger.
// It is constructed fresh per analysis and never mutated after return.
type AnalysisResult struct {
	Ticker         string
	Timestamp      time.Time
	Snapshot       *PriceSnapshot // nil when price data is unavailable
	Sentiment      Sentiment
	Recommendation Recommendation
	Metadata       map[string]any
}
