// Package chart detects the geometric signature of a price chart in a
// captured frame. The verdict is corroborating evidence only; it never
// gates ticker recognition.
package chart

import (
	"math"

	"gocv.io/x/gocv"

	"ticker-scout/pkg/geometry"
)

// Options configures line and grid detection.
type Options struct {
	// Probabilistic Hough transform
	Rho           float64 // distance resolution in pixels
	Theta         float64 // angle resolution in radians
	Votes         int     // accumulator threshold
	MinLineLength int
	MaxLineGap    int
	CannyLow      float32
	CannyHigh     float32

	// Line-pattern classification
	MinSegments        int     // fewer segments short-circuits to "no chart"
	HorizontalBandLow  float64 // degrees
	HorizontalBandHigh float64
	VerticalBandLow    float64
	VerticalBandHigh   float64
	HorizontalFracMin  float64
	VerticalFracMax    float64

	// Grid detection
	AdaptiveBlock     int
	AdaptiveC         float32
	GridEpsilonPct    float64 // polygon approximation tolerance, fraction of perimeter
	GridRectThreshold int     // 4-vertex polygons needed for a grid

	// Verdict fusion
	GridBoost       int
	ConfidenceFloor int
}

// DefaultOptions returns detection defaults tuned for screen-rendered charts.
func DefaultOptions() Options {
	return Options{
		Rho:                1,
		Theta:              math.Pi / 180,
		Votes:              100,
		MinLineLength:      100,
		MaxLineGap:         10,
		CannyLow:           50,
		CannyHigh:          150,
		MinSegments:        5,
		HorizontalBandLow:  -30,
		HorizontalBandHigh: 30,
		VerticalBandLow:    60,
		VerticalBandHigh:   120,
		HorizontalFracMin:  0.6,
		VerticalFracMax:    0.3,
		AdaptiveBlock:      11,
		AdaptiveC:          2,
		GridEpsilonPct:     0.04,
		GridRectThreshold:  5,
		GridBoost:          20,
		ConfidenceFloor:    60,
	}
}

// Metadata carries the raw figures behind a verdict, for telemetry.
type Metadata struct {
	NumSegments    int     `json:"num_segments"`
	HorizontalFrac float64 `json:"horizontal_frac"`
	VerticalFrac   float64 `json:"vertical_frac"`
	MeanAngle      float64 `json:"mean_angle"`
	RectCount      int     `json:"rect_count"`
	HasGrid        bool    `json:"has_grid"`
	LineConfidence int     `json:"line_confidence"`
}

// Verdict is the chart detection result.
type Verdict struct {
	IsChart    bool
	Confidence int // 0-100
	Metadata   Metadata
}

// Detect analyzes a frame for a chart pattern. The frame is not modified.
// Any failure degrades to a negative verdict, never an error.
func Detect(img gocv.Mat, opts Options) Verdict {
	if img.Empty() {
		return Verdict{}
	}

	segments := extractSegments(img, opts)
	rects := countRectangles(img, opts)

	lineMatched, lineConf, meta := analyzeLinePattern(segments, opts)
	meta.RectCount = rects
	meta.HasGrid = rects > opts.GridRectThreshold

	isChart, conf := combineVerdict(lineMatched, lineConf, meta.HasGrid, opts)
	return Verdict{IsChart: isChart, Confidence: conf, Metadata: meta}
}

// extractSegments runs an independent edge-detection pass and the
// probabilistic Hough transform.
func extractSegments(img gocv.Mat, opts Options) []geometry.Segment {
	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() == 1 {
		img.CopyTo(&gray)
	} else {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, opts.CannyLow, opts.CannyHigh)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, float32(opts.Rho), float32(opts.Theta),
		opts.Votes, float32(opts.MinLineLength), float32(opts.MaxLineGap))

	segments := make([]geometry.Segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segments = append(segments, geometry.Segment{
			X1: int(v[0]), Y1: int(v[1]), X2: int(v[2]), Y2: int(v[3]),
		})
	}
	return segments
}

// countRectangles binarizes the frame and counts contours that approximate
// to 4-vertex polygons.
func countRectangles(img gocv.Mat, opts Options) int {
	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() == 1 {
		img.CopyTo(&gray)
	} else {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	}

	thresh := gocv.NewMat()
	defer thresh.Close()
	block := opts.AdaptiveBlock
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}
	gocv.AdaptiveThreshold(gray, &thresh, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, block, opts.AdaptiveC)

	contours := gocv.FindContours(thresh, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	count := 0
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		epsilon := opts.GridEpsilonPct * gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, epsilon, true)
		if approx.Size() == 4 {
			count++
		}
		approx.Close()
	}
	return count
}
