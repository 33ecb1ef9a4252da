package stitch

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// areaKernel is a box filter. x/image/draw widens a kernel's support by the
// shrink factor, so when downscaling every destination pixel becomes the
// average of the source area it covers.
var areaKernel = &draw.Kernel{
	Support: 0.5,
	At:      func(float64) float64 { return 1 },
}

// resample scales src into dr of dst. Shrinking averages areas; enlarging
// uses bilinear interpolation.
func resample(dst draw.Image, dr image.Rectangle, src image.Image, op draw.Op) {
	sr := src.Bounds()
	if dr.Empty() || sr.Empty() {
		return
	}
	if dr.Dx() <= sr.Dx() && dr.Dy() <= sr.Dy() {
		areaKernel.Scale(dst, dr, src, sr, op, nil)
		return
	}
	draw.BiLinear.Scale(dst, dr, src, sr, op, nil)
}

// scaledHeight returns round(h * targetWidth / w), never less than one row.
func scaledHeight(r image.Rectangle, targetWidth int) int {
	h := int(math.Round(float64(r.Dy()) * float64(targetWidth) / float64(r.Dx())))
	return max(h, 1)
}

// scaledWidth returns round(w * targetHeight / h), never less than one column.
func scaledWidth(r image.Rectangle, targetHeight int) int {
	w := int(math.Round(float64(r.Dx()) * float64(targetHeight) / float64(r.Dy())))
	return max(w, 1)
}
