package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Alphabet is the closed character set recognized by the classifier, in the
// order templates are scored. When multiple templates reach the same maximum
// score, the first one in this string wins; the enumeration order is part of
// the matching contract and must not change.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Template canvas size in pixels. Every glyph is resized to this canvas
// before correlation.
const (
	TemplateWidth  = 30
	TemplateHeight = 40
)

// TemplateSet holds one reference image per alphabet character. It is built
// once at startup, never mutated afterwards, and safe for concurrent reads.
type TemplateSet struct {
	mats []gocv.Mat
}

// BuildTemplateSet renders the alphabet onto fixed-size canvases. Templates
// are white glyphs on black, matching the polarity of the preprocessed input.
func BuildTemplateSet() *TemplateSet {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	set := &TemplateSet{mats: make([]gocv.Mat, 0, len(Alphabet))}
	for i := 0; i < len(Alphabet); i++ {
		mat := gocv.NewMatWithSize(TemplateHeight, TemplateWidth, gocv.MatTypeCV8U)
		gocv.PutText(&mat, string(Alphabet[i]), image.Pt(5, 30),
			gocv.FontHersheySimplex, 1, white, 2)
		set.mats = append(set.mats, mat)
	}
	return set
}

// Len returns the number of templates.
func (s *TemplateSet) Len() int { return len(s.mats) }

// At returns the character and reference image at index i. The returned Mat
// is shared and must not be modified or closed by the caller.
func (s *TemplateSet) At(i int) (byte, gocv.Mat) {
	return Alphabet[i], s.mats[i]
}

// Close releases all template images.
func (s *TemplateSet) Close() {
	for i := range s.mats {
		s.mats[i].Close()
	}
	s.mats = nil
}
