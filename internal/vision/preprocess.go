// Package vision implements the on-screen ticker recognition pipeline:
// preprocessing, glyph segmentation and template-based classification.
package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// PreprocessOptions configures the preprocessing chain.
type PreprocessOptions struct {
	BlurKernel    int     // Gaussian kernel size, must be odd
	AdaptiveBlock int     // adaptive threshold window, must be odd
	AdaptiveC     float32 // constant subtracted from the local mean
	CannyLow      float32
	CannyHigh     float32
}

// DefaultPreprocessOptions returns the preprocessing defaults tuned for
// screen-rendered text.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		BlurKernel:    5,
		AdaptiveBlock: 11,
		AdaptiveC:     2,
		CannyLow:      50,
		CannyHigh:     150,
	}
}

// Preprocess converts a captured frame into a binary foreground image and an
// edge image for contour extraction. The input is never modified. An empty or
// unusable input yields empty Mats rather than an error; downstream stages
// treat empty as "no result".
//
// Order matters: grayscale, Gaussian blur, inverted adaptive threshold, Canny.
func Preprocess(img gocv.Mat, opts PreprocessOptions) (binary, edges gocv.Mat) {
	binary = gocv.NewMat()
	edges = gocv.NewMat()
	if img.Empty() || img.Rows() == 0 || img.Cols() == 0 {
		return binary, edges
	}

	gray := gocv.NewMat()
	defer gray.Close()
	switch img.Channels() {
	case 1:
		img.CopyTo(&gray)
	case 3:
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(img, &gray, gocv.ColorBGRAToGray)
	default:
		return binary, edges
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := opts.BlurKernel
	if k < 1 {
		k = 1
	}
	if k%2 == 0 {
		k++
	}
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	block := opts.AdaptiveBlock
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}
	gocv.AdaptiveThreshold(blurred, &binary, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, block, opts.AdaptiveC)

	gocv.Canny(binary, &edges, opts.CannyLow, opts.CannyHigh)
	return binary, edges
}
