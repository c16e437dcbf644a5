// Package export captures a rendered document surface, trims its blank
// margins, and writes the result as a paginated A4 PDF.
package export

import (
	"image"

	"github.com/disintegration/imaging"
)

// Capture and page geometry constants. The threshold and scale are
// calibration values, overridable through config; the rest is fixed A4
// geometry.
const (
	// A4WidthPx is the logical capture width: an A4 page at 96 DPI.
	A4WidthPx = 794
	// CaptureScale oversamples the capture for print sharpness.
	CaptureScale = 1.5
	// NearWhiteThreshold is the default per-channel value at or above which
	// a pixel counts as background.
	NearWhiteThreshold = 250
	// PageMarginMm is applied on all four sides of every PDF page.
	PageMarginMm = 8.0
)

// isBackground reports whether a pixel reads as blank: fully transparent, or
// all three channels at or above the threshold.
func isBackground(img image.Image, x, y int, threshold uint8) bool {
	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return true
	}
	t := uint32(threshold) * 0x101 // scale 8-bit threshold to 16-bit channels
	return r >= t && g >= t && b >= t
}

// contentBounds scans for the smallest rectangle containing any
// non-background pixel: topmost row first, then bottommost, then - within
// that row range - leftmost and rightmost columns. The second return is
// false when the raster is entirely background.
func contentBounds(img image.Image, threshold uint8) (image.Rectangle, bool) {
	b := img.Bounds()

	top, found := b.Min.Y, false
scanTop:
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isBackground(img, x, y, threshold) {
				top = y
				found = true
				break scanTop
			}
		}
	}
	if !found {
		return image.Rectangle{}, false
	}

	bottom := b.Max.Y - 1
scanBottom:
	for y := b.Max.Y - 1; y >= top; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isBackground(img, x, y, threshold) {
				bottom = y
				break scanBottom
			}
		}
	}

	left := b.Min.X
scanLeft:
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := top; y <= bottom; y++ {
			if !isBackground(img, x, y, threshold) {
				left = x
				break scanLeft
			}
		}
	}

	right := b.Max.X - 1
scanRight:
	for x := b.Max.X - 1; x >= left; x-- {
		for y := top; y <= bottom; y++ {
			if !isBackground(img, x, y, threshold) {
				right = x
				break scanRight
			}
		}
	}

	// Clamp to at least 1x1.
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return image.Rect(left, top, right+1, bottom+1), true
}

// cropToContent trims surrounding blank margins. An all-background raster,
// or one whose content already fills the canvas, is returned unchanged -
// cropping never fails and never produces a zero-size image.
func cropToContent(img image.Image, threshold uint8) image.Image {
	bounds, found := contentBounds(img, threshold)
	if !found || bounds == img.Bounds() {
		return img
	}
	return imaging.Crop(img, bounds)
}
