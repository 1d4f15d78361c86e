package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// MatchResult is the outcome of classifying one glyph region. A zero Char
// means no template scored above the acceptance threshold; that is a normal
// negative result, not an error.
type MatchResult struct {
	Char  byte
	Score float64 // in [0, 1]
}

// Matched reports whether the glyph was accepted as a character.
func (m MatchResult) Matched() bool { return m.Char != 0 }

// Classifier matches one glyph sub-image against a reference alphabet.
type Classifier interface {
	Match(glyph gocv.Mat) MatchResult
}

// TemplateClassifier scores glyphs against a TemplateSet using normalized
// cross-correlation. The set is read-only shared state; concurrent Match
// calls are safe.
type TemplateClassifier struct {
	set       *TemplateSet
	threshold float64
}

// NewTemplateClassifier creates a classifier over the given set with the
// given acceptance threshold.
func NewTemplateClassifier(set *TemplateSet, threshold float64) *TemplateClassifier {
	return &TemplateClassifier{set: set, threshold: threshold}
}

// Match resizes the glyph to the template canvas and correlates it against
// every template in alphabet order, keeping the first maximum.
func (c *TemplateClassifier) Match(glyph gocv.Mat) MatchResult {
	if glyph.Empty() || c.set == nil || c.set.Len() == 0 {
		return MatchResult{}
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(glyph, &resized, image.Pt(TemplateWidth, TemplateHeight), 0, 0,
		gocv.InterpolationLinear)

	mask := gocv.NewMat()
	defer mask.Close()

	var bestChar byte
	bestScore := -1.0
	for i := 0; i < c.set.Len(); i++ {
		ch, tmpl := c.set.At(i)

		result := gocv.NewMat()
		gocv.MatchTemplate(resized, tmpl, &result, gocv.TmCcoeffNormed, mask)
		_, maxVal, _, _ := gocv.MinMaxLoc(result)
		result.Close()

		// Strict > keeps the first maximum; alphabet order is the tie-break.
		if float64(maxVal) > bestScore {
			bestScore = float64(maxVal)
			bestChar = ch
		}
	}

	if bestScore < c.threshold {
		return MatchResult{}
	}
	if bestScore > 1 {
		bestScore = 1
	}
	if bestScore < 0 {
		bestScore = 0
	}
	return MatchResult{Char: bestChar, Score: bestScore}
}
