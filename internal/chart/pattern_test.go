package chart

import (
	"testing"

	"ticker-scout/pkg/geometry"
)

func horizontalSeg(y int) geometry.Segment {
	return geometry.Segment{X1: 0, Y1: y, X2: 200, Y2: y}
}

func verticalSeg(x int) geometry.Segment {
	return geometry.Segment{X1: x, Y1: 0, X2: x, Y2: 200}
}

func TestAnalyzeLinePatternShortCircuit(t *testing.T) {
	opts := DefaultOptions()
	for n := 0; n < opts.MinSegments; n++ {
		segs := make([]geometry.Segment, n)
		for i := range segs {
			segs[i] = horizontalSeg(i * 10)
		}
		matched, conf, meta := analyzeLinePattern(segs, opts)
		if matched || conf != 0 {
			t.Errorf("%d segments: expected (false, 0), got (%v, %d)", n, matched, conf)
		}
		if meta.NumSegments != n {
			t.Errorf("%d segments: metadata count %d", n, meta.NumSegments)
		}
	}
}

func TestAnalyzeLinePatternHorizontalDominant(t *testing.T) {
	opts := DefaultOptions()
	// 8 horizontal, 2 vertical: horiz frac 0.8 > 0.6, vert frac 0.2 < 0.3.
	var segs []geometry.Segment
	for i := 0; i < 8; i++ {
		segs = append(segs, horizontalSeg(i*20))
	}
	segs = append(segs, verticalSeg(10), verticalSeg(50))

	matched, conf, meta := analyzeLinePattern(segs, opts)
	if !matched {
		t.Fatal("expected a line-pattern match")
	}
	if conf != 80 {
		t.Errorf("expected confidence 80 (round(0.8*100)), got %d", conf)
	}
	if meta.HorizontalFrac != 0.8 || meta.VerticalFrac != 0.2 {
		t.Errorf("unexpected fractions: %+v", meta)
	}
}

func TestAnalyzeLinePatternTooManyVerticals(t *testing.T) {
	opts := DefaultOptions()
	// 7 horizontal, 3 vertical: horiz 0.7 > 0.6 but vert 0.3 is not < 0.3.
	var segs []geometry.Segment
	for i := 0; i < 7; i++ {
		segs = append(segs, horizontalSeg(i * 20))
	}
	for i := 0; i < 3; i++ {
		segs = append(segs, verticalSeg(i * 30))
	}

	matched, conf, _ := analyzeLinePattern(segs, opts)
	if matched || conf != 0 {
		t.Errorf("expected no match at the vertical-fraction boundary, got (%v, %d)", matched, conf)
	}
}

func TestCombineVerdict(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name        string
		lineMatched bool
		lineConf    int
		hasGrid     bool
		wantChart   bool
		wantConf    int
	}{
		{"line only above floor", true, 70, false, true, 70},
		{"line below floor without grid", true, 55, false, false, 55},
		{"grid boost lifts over floor", true, 55, true, true, 75},
		{"boost capped at 100", true, 95, true, true, 100},
		{"no line match ignores grid", false, 0, true, false, 0},
		{"exactly at floor", true, 60, false, true, 60},
	}
	for _, tt := range tests {
		isChart, conf := combineVerdict(tt.lineMatched, tt.lineConf, tt.hasGrid, opts)
		if isChart != tt.wantChart || conf != tt.wantConf {
			t.Errorf("%s: got (%v, %d), want (%v, %d)",
				tt.name, isChart, conf, tt.wantChart, tt.wantConf)
		}
	}
}

func TestDetectEmptyFrame(t *testing.T) {
	v := Detect(emptyMat(t), DefaultOptions())
	if v.IsChart || v.Confidence != 0 {
		t.Errorf("expected negative verdict for empty frame, got %+v", v)
	}
}
