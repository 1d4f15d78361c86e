package chart

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"ticker-scout/pkg/geometry"
)

// analyzeLinePattern classifies segment angles into horizontal-ish and
// vertical-ish bands and decides whether their distribution looks like a
// price chart. Fewer than MinSegments segments short-circuits to no match.
func analyzeLinePattern(segments []geometry.Segment, opts Options) (matched bool, confidence int, meta Metadata) {
	meta.NumSegments = len(segments)
	if len(segments) < opts.MinSegments {
		return false, 0, meta
	}

	angles := make([]float64, len(segments))
	horizontal, vertical := 0, 0
	for i, s := range segments {
		a := s.AngleDegrees()
		angles[i] = a
		if a >= opts.HorizontalBandLow && a <= opts.HorizontalBandHigh {
			horizontal++
		}
		if a >= opts.VerticalBandLow && a <= opts.VerticalBandHigh {
			vertical++
		}
	}

	total := float64(len(segments))
	meta.HorizontalFrac = float64(horizontal) / total
	meta.VerticalFrac = float64(vertical) / total
	meta.MeanAngle = stat.Mean(angles, nil)

	// Charts are dominated by price/axis lines running left to right.
	if meta.HorizontalFrac > opts.HorizontalFracMin && meta.VerticalFrac < opts.VerticalFracMax {
		confidence = int(math.Round(meta.HorizontalFrac * 100))
		if confidence > 100 {
			confidence = 100
		}
		meta.LineConfidence = confidence
		return true, confidence, meta
	}
	return false, 0, meta
}

// combineVerdict fuses the line-pattern match with grid presence. The grid
// boost applies only on top of a line match; the confidence floor decides
// the final verdict.
func combineVerdict(lineMatched bool, lineConf int, hasGrid bool, opts Options) (bool, int) {
	conf := lineConf
	if lineMatched && hasGrid {
		conf += opts.GridBoost
		if conf > 100 {
			conf = 100
		}
	}
	return lineMatched && conf >= opts.ConfidenceFloor, conf
}
