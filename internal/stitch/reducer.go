package stitch

import (
	"image"
	"math"
)

// reduce scales img uniformly so its height is exactly maxHeight. Images
// already within the limit are returned unchanged.
func reduce(img *image.RGBA, maxHeight int) *image.RGBA {
	b := img.Bounds()
	if b.Dy() <= maxHeight {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, scaledWidth(b, maxHeight), maxHeight))
	shrinkArea(dst, img)
	return dst
}

// span is the run of source pixels covering one destination pixel, with
// the fraction of the destination pixel each of them contributes.
type span struct {
	first   int
	weights []float64
}

// areaSpan returns the source run for destination index d when n source
// pixels are squeezed into n/scale destination pixels. weights is reused
// when it has room.
func areaSpan(d int, scale float64, n int, weights []float64) span {
	lo := float64(d) * scale
	hi := lo + scale
	first := int(lo)
	last := min(int(math.Ceil(hi)), n)

	weights = weights[:0]
	for s := first; s < last; s++ {
		overlap := math.Min(hi, float64(s+1)) - math.Max(lo, float64(s))
		weights = append(weights, overlap/scale)
	}
	return span{first: first, weights: weights}
}

// shrinkArea averages src into the smaller dst, each destination pixel
// taking the area-weighted mean of the source pixels it covers. It works
// one destination row at a time, so scratch memory is a single accumulated
// source row regardless of the image height.
func shrinkArea(dst, src *image.RGBA) {
	sb, db := src.Bounds(), dst.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	dw, dh := db.Dx(), db.Dy()
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return
	}

	xScale := float64(sw) / float64(dw)
	yScale := float64(sh) / float64(dh)

	cols := make([]span, dw)
	for dx := range cols {
		cols[dx] = areaSpan(dx, xScale, sw, nil)
	}

	acc := make([]float64, sw*4)
	var rowWeights []float64

	for dy := 0; dy < dh; dy++ {
		rows := areaSpan(dy, yScale, sh, rowWeights)
		rowWeights = rows.weights

		clear(acc)
		for k, w := range rows.weights {
			off := src.PixOffset(sb.Min.X, sb.Min.Y+rows.first+k)
			line := src.Pix[off : off+sw*4]
			for i, v := range line {
				acc[i] += w * float64(v)
			}
		}

		out := dst.Pix[dst.PixOffset(db.Min.X, db.Min.Y+dy):]
		for dx, col := range cols {
			var px [4]float64
			for k, w := range col.weights {
				i := (col.first + k) * 4
				px[0] += w * acc[i]
				px[1] += w * acc[i+1]
				px[2] += w * acc[i+2]
				px[3] += w * acc[i+3]
			}
			o := dx * 4
			out[o] = clamp8(px[0])
			out[o+1] = clamp8(px[1])
			out[o+2] = clamp8(px[2])
			out[o+3] = clamp8(px[3])
		}
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
