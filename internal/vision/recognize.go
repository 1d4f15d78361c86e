package vision

import (
	"image"
	"strings"

	"gocv.io/x/gocv"

	"ticker-scout/pkg/geometry"
)

// Ticker length gate. Region counts outside this range are rejected before
// any classification happens.
const (
	MinTickerLen = 3
	MaxTickerLen = 5
)

// Recognizer composes preprocessing, segmentation and classification into
// the ticker detection pipeline.
type Recognizer struct {
	pre        PreprocessOptions
	bounds     CharBounds
	classifier Classifier
}

// NewRecognizer creates a Recognizer. The classifier is injected so the
// template set can be built once and shared.
func NewRecognizer(pre PreprocessOptions, bounds CharBounds, classifier Classifier) *Recognizer {
	return &Recognizer{pre: pre, bounds: bounds, classifier: classifier}
}

// DetectTicker scans a captured frame for a ticker symbol. It returns the
// empty string when no acceptable candidate is found: region count outside
// [MinTickerLen, MaxTickerLen], or any single region failing template
// matching, discards the whole candidate. Partial tickers are never emitted;
// a plausible-but-wrong symbol is worse than none.
func (r *Recognizer) DetectTicker(img gocv.Mat) string {
	if img.Empty() {
		return ""
	}

	binary, edges := Preprocess(img, r.pre)
	defer binary.Close()
	defer edges.Close()
	if edges.Empty() {
		return ""
	}

	regions := SegmentGlyphs(edges, r.bounds)
	return r.assemble(edges, regions)
}

// assemble classifies each region in reading order and concatenates the
// matches, enforcing the length gate and the all-or-nothing policy.
func (r *Recognizer) assemble(edges gocv.Mat, regions []geometry.RectInt) string {
	if len(regions) < MinTickerLen || len(regions) > MaxTickerLen {
		return ""
	}

	var sb strings.Builder
	for _, reg := range regions {
		crop := cropRegion(edges, reg)
		if crop.Empty() {
			return ""
		}
		res := r.classifier.Match(crop)
		crop.Close()
		if !res.Matched() {
			return ""
		}
		sb.WriteByte(res.Char)
	}
	return sb.String()
}

// cropRegion extracts a glyph sub-image, clamped to the source bounds.
// The returned Mat shares storage with src and must be closed by the caller.
func cropRegion(src gocv.Mat, reg geometry.RectInt) gocv.Mat {
	x0, y0 := reg.X, reg.Y
	x1, y1 := reg.X+reg.Width, reg.Y+reg.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > src.Cols() {
		x1 = src.Cols()
	}
	if y1 > src.Rows() {
		y1 = src.Rows()
	}
	if x1 <= x0 || y1 <= y0 {
		return gocv.NewMat()
	}
	return src.Region(image.Rect(x0, y0, x1, y1))
}
