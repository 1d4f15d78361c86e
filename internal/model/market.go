package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSnapshot summarizes recent price action for one symbol.
// A nil *PriceSnapshot means "no data" and is a valid state.
type PriceSnapshot struct {
	Price           float64
	PriceChangePct  float64 // change vs previous close, percent
	FiveDayTrendPct float64 // close-over-close change across the window, percent
	LatestVolume    float64
	VolumeTrendPct  float64 // latest volume vs window average, percent
}
