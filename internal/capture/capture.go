// Package capture grabs frames from a display for analysis.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// Source produces one frame per call. The caller owns the returned Mat and
// must Close it.
type Source interface {
	Capture() (gocv.Mat, error)
}

// DisplaySource captures a full display.
type DisplaySource struct {
	Display int     // display index
	Scale   float64 // downscale factor in (0, 1], 1 = native resolution
}

// NewDisplaySource returns a source for the given display index.
func NewDisplaySource(display int, scale float64) *DisplaySource {
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	return &DisplaySource{Display: display, Scale: scale}
}

// Capture grabs the display contents as a BGR Mat.
func (s *DisplaySource) Capture() (gocv.Mat, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return gocv.NewMat(), fmt.Errorf("capture: no active displays")
	}
	if s.Display < 0 || s.Display >= n {
		return gocv.NewMat(), fmt.Errorf("capture: display %d out of range (%d active)", s.Display, n)
	}

	bounds := screenshot.GetDisplayBounds(s.Display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("capture display %d: %w", s.Display, err)
	}

	frame := image.Image(img)
	if s.Scale < 1 {
		frame = downscale(img, s.Scale)
	}
	return toMat(frame)
}

// downscale resizes before the Mat conversion so the vision passes work on
// fewer pixels.
func downscale(src *image.RGBA, scale float64) image.Image {
	b := src.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func toMat(img image.Image) (gocv.Mat, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return gocv.NewMat(), fmt.Errorf("capture encode: %w", err)
	}
	mat, err := gocv.IMDecode(buf.Bytes(), gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("capture decode: %w", err)
	}
	return mat, nil
}
