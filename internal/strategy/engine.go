// Package strategy fuses price-trend, volume, and sentiment signals into a
// trade recommendation.
package strategy

import (
	"ticker-scout/internal/model"
)

// signal is the directional reading of a single input.
type signal int

const (
	signalNeutral signal = iota
	signalBuy
	signalSell
)

// Options holds the fusion thresholds and confidence deltas.
type Options struct {
	TrendThresholdPct  float64 // five-day trend beyond this picks a direction
	VolumeThresholdPct float64 // volume trend above this adds confidence
	SentimentThreshold float64 // sentiment score beyond this picks a direction

	TrendDelta           int
	VolumeDelta          int
	SentimentDelta       int
	AgreementDelta       int // both signals agree on a direction
	ContradictionPenalty int // signals disagree or both are neutral
}

// DefaultOptions returns the standard thresholds and deltas.
func DefaultOptions() Options {
	return Options{
		TrendThresholdPct:    2,
		VolumeThresholdPct:   20,
		SentimentThreshold:   20,
		TrendDelta:           10,
		VolumeDelta:          10,
		SentimentDelta:       15,
		AgreementDelta:       15,
		ContradictionPenalty: 10,
	}
}

// Engine evaluates snapshots against fixed options. It holds no mutable
// state, so Evaluate is a pure function of its arguments.
type Engine struct {
	opts Options
}

// NewEngine builds an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Evaluate combines the price snapshot and sentiment score into an action
// and confidence. Confidence accumulates from a base of 50 and is clamped
// to [0, 100]; a missing snapshot short-circuits to (HOLD, 50).
func (e *Engine) Evaluate(snap *model.PriceSnapshot, sentimentScore float64) model.Recommendation {
	if snap == nil {
		return model.Recommendation{Action: model.ActionHold, Confidence: 50}
	}

	conf := 50

	trend := signalNeutral
	switch {
	case snap.FiveDayTrendPct > e.opts.TrendThresholdPct:
		trend = signalBuy
		conf += e.opts.TrendDelta
	case snap.FiveDayTrendPct < -e.opts.TrendThresholdPct:
		trend = signalSell
		conf += e.opts.TrendDelta
	}

	if snap.VolumeTrendPct > e.opts.VolumeThresholdPct {
		conf += e.opts.VolumeDelta
	}

	sent := signalNeutral
	switch {
	case sentimentScore > e.opts.SentimentThreshold:
		sent = signalBuy
		conf += e.opts.SentimentDelta
	case sentimentScore < -e.opts.SentimentThreshold:
		sent = signalSell
		conf += e.opts.SentimentDelta
	}

	switch {
	case trend == signalBuy && sent == signalBuy:
		return model.Recommendation{Action: model.ActionBuy, Confidence: clamp(conf + e.opts.AgreementDelta)}
	case trend == signalSell && sent == signalSell:
		return model.Recommendation{Action: model.ActionSell, Confidence: clamp(conf + e.opts.AgreementDelta)}
	case trend == signalBuy && sent != signalSell:
		return model.Recommendation{Action: model.ActionBuy, Confidence: clamp(conf)}
	case trend == signalSell && sent != signalBuy:
		return model.Recommendation{Action: model.ActionSell, Confidence: clamp(conf)}
	}

	// Contradiction or no directional signal at all.
	conf -= e.opts.ContradictionPenalty
	if conf < 50 {
		conf = 50
	}
	return model.Recommendation{Action: model.ActionHold, Confidence: clamp(conf)}
}

func clamp(conf int) int {
	if conf < 0 {
		return 0
	}
	if conf > 100 {
		return 100
	}
	return conf
}
