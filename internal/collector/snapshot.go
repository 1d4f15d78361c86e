package collector

import (
	"gonum.org/v1/gonum/stat"

	"ticker-scout/internal/model"
)

// SnapshotFromBars summarizes daily bars into a price snapshot. Fewer than
// two bars is not enough to compute any trend and yields nil.
func SnapshotFromBars(bars []model.OHLCV) *model.PriceSnapshot {
	if len(bars) < 2 {
		return nil
	}

	latest := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	snap := &model.PriceSnapshot{
		Price:        latest.Close,
		LatestVolume: latest.Volume,
	}
	if prev.Close != 0 {
		snap.PriceChangePct = (latest.Close - prev.Close) / prev.Close * 100
	}

	// Trend over up to five trading days, anchored at the oldest bar in
	// the window.
	start := len(bars) - 6
	if start < 0 {
		start = 0
	}
	if anchor := bars[start].Close; anchor != 0 {
		snap.FiveDayTrendPct = (latest.Close - anchor) / anchor * 100
	}

	// Volume trend compares the latest bar against the average of the
	// bars before it.
	prior := make([]float64, 0, len(bars)-1)
	for _, b := range bars[:len(bars)-1] {
		prior = append(prior, b.Volume)
	}
	if avg := stat.Mean(prior, nil); avg != 0 {
		snap.VolumeTrendPct = (latest.Volume - avg) / avg * 100
	}

	return snap
}
