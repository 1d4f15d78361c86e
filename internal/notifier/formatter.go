// Package notifier publishes analysis results to output sinks.
package notifier

import (
	"fmt"
	"strings"

	"ticker-scout/internal/model"
)

// FormatResult renders one analysis result for display.
func FormatResult(res *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | %s\n", res.Ticker, res.Timestamp.Format("2006-01-02 15:04:05")))

	if snap := res.Snapshot; snap != nil {
		b.WriteString(fmt.Sprintf("  price: %.2f (%+.2f%% day, %+.2f%% 5d)\n",
			snap.Price, snap.PriceChangePct, snap.FiveDayTrendPct))
		b.WriteString(fmt.Sprintf("  volume: %.0f (%+.1f%% vs avg)\n",
			snap.LatestVolume, snap.VolumeTrendPct))
	} else {
		b.WriteString("  price: unavailable\n")
	}

	b.WriteString(fmt.Sprintf("  sentiment: %.1f (%s)\n", res.Sentiment.Score, res.Sentiment.Label))

	if chart, ok := res.Metadata["chart_confidence"]; ok {
		b.WriteString(fmt.Sprintf("  chart: %v%% confidence\n", chart))
	}

	b.WriteString(fmt.Sprintf("  => %s (confidence %d)\n",
		res.Recommendation.Action, res.Recommendation.Confidence))
	return b.String()
}
