package vision

import (
	"sort"

	"gocv.io/x/gocv"

	"ticker-scout/pkg/geometry"
)

// CharBounds limits the size of boxes accepted as glyph candidates.
type CharBounds struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// DefaultCharBounds returns glyph size limits for typical on-screen
// ticker text.
func DefaultCharBounds() CharBounds {
	return CharBounds{MinWidth: 20, MaxWidth: 50, MinHeight: 30, MaxHeight: 60}
}

// fits reports whether a box passes the size filter.
func (b CharBounds) fits(w, h int) bool {
	return w >= b.MinWidth && w <= b.MaxWidth && h >= b.MinHeight && h <= b.MaxHeight
}

// SegmentGlyphs finds plausible glyph bounding boxes in a preprocessed edge
// image and returns them in left-to-right reading order. Overlapping boxes
// are kept as separate regions; no merging is attempted. Any failure yields
// an empty slice.
func SegmentGlyphs(edges gocv.Mat, bounds CharBounds) []geometry.RectInt {
	if edges.Empty() {
		return nil
	}

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var regions []geometry.RectInt
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		w, h := rect.Dx(), rect.Dy()
		if !bounds.fits(w, h) {
			continue
		}
		regions = append(regions, geometry.RectInt{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  w,
			Height: h,
		})
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].X < regions[j].X })
	return regions
}
