package collector

import (
	"math"
	"testing"
	"time"

	"ticker-scout/internal/model"
)

func dailyBars(closes []float64, volumes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		bars[i] = model.OHLCV{
			Time:   day.AddDate(0, 0, i),
			Open:   closes[i],
			High:   closes[i],
			Low:    closes[i],
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSnapshotFromBarsTooFew(t *testing.T) {
	if snap := SnapshotFromBars(nil); snap != nil {
		t.Errorf("nil bars: got %+v, want nil", snap)
	}
	one := dailyBars([]float64{100}, []float64{1000})
	if snap := SnapshotFromBars(one); snap != nil {
		t.Errorf("one bar: got %+v, want nil", snap)
	}
}

func TestSnapshotFromBarsTrends(t *testing.T) {
	// Six bars: five-day trend anchors at the first, 100 -> 106 = +6%.
	closes := []float64{100, 101, 102, 103, 104, 106}
	volumes := []float64{1000, 1000, 1000, 1000, 1000, 1500}
	snap := SnapshotFromBars(dailyBars(closes, volumes))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.Price != 106 {
		t.Errorf("price: got %.2f, want 106", snap.Price)
	}
	if !near(snap.FiveDayTrendPct, 6) {
		t.Errorf("five-day trend: got %.4f, want 6", snap.FiveDayTrendPct)
	}
	// 104 -> 106 is about +1.923%.
	if !near(snap.PriceChangePct, (106.0-104.0)/104.0*100) {
		t.Errorf("day change: got %.4f", snap.PriceChangePct)
	}
	// Latest volume 1500 vs 1000 average of the prior five = +50%.
	if !near(snap.VolumeTrendPct, 50) {
		t.Errorf("volume trend: got %.4f, want 50", snap.VolumeTrendPct)
	}
	if snap.LatestVolume != 1500 {
		t.Errorf("latest volume: got %.0f, want 1500", snap.LatestVolume)
	}
}

func TestSnapshotFromBarsShortWindow(t *testing.T) {
	// With only three bars the trend anchors at the oldest available bar.
	closes := []float64{200, 190, 180}
	volumes := []float64{500, 500, 400}
	snap := SnapshotFromBars(dailyBars(closes, volumes))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if !near(snap.FiveDayTrendPct, -10) {
		t.Errorf("trend: got %.4f, want -10", snap.FiveDayTrendPct)
	}
	if !near(snap.VolumeTrendPct, -20) {
		t.Errorf("volume trend: got %.4f, want -20", snap.VolumeTrendPct)
	}
}
