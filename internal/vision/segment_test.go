package vision

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// drawBox paints a filled rectangle onto a binary image.
func drawBox(m *gocv.Mat, x, y, w, h int) {
	gocv.Rectangle(m, image.Rect(x, y, x+w, y+h), white, -1)
}

func TestSegmentGlyphsSizeFilterAndOrder(t *testing.T) {
	img := gocv.NewMatWithSize(200, 400, gocv.MatTypeCV8U)
	defer img.Close()

	// Three glyph-sized boxes out of reading order, plus one too small and
	// one too large.
	drawBox(&img, 150, 50, 30, 40)
	drawBox(&img, 30, 50, 30, 40)
	drawBox(&img, 90, 50, 30, 40)
	drawBox(&img, 5, 5, 6, 6)
	drawBox(&img, 230, 20, 120, 150)

	regions := SegmentGlyphs(img, DefaultCharBounds())
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions after size filtering, got %d", len(regions))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i].X < regions[i-1].X {
			t.Fatalf("regions not sorted by x: %+v", regions)
		}
	}
	wantX := []int{30, 90, 150}
	for i, r := range regions {
		if r.X < wantX[i]-2 || r.X > wantX[i]+2 {
			t.Errorf("region %d: expected x near %d, got %d", i, wantX[i], r.X)
		}
		if !DefaultCharBounds().fits(r.Width, r.Height) {
			t.Errorf("region %d fails its own size filter: %+v", i, r)
		}
	}
}

func TestSegmentGlyphsEmptyInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	if got := SegmentGlyphs(empty, DefaultCharBounds()); len(got) != 0 {
		t.Errorf("expected no regions for empty input, got %d", len(got))
	}

	blank := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8U)
	defer blank.Close()
	if got := SegmentGlyphs(blank, DefaultCharBounds()); len(got) != 0 {
		t.Errorf("expected no regions for blank input, got %d", len(got))
	}
}
