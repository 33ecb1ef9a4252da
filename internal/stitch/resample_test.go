package stitch

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

func TestScaledHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		w, h   int
		target int
		want   int
	}{
		{"a4-ish portrait", 1000, 1400, 640, 896},
		{"rounds to nearest", 3, 1, 2, 1}, // 0.67
		{"landscape at 1000", 1400, 1000, 1000, 714},
		{"never zero", 10000, 1, 640, 1},
		{"identity", 640, 333, 640, 333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scaledHeight(image.Rect(0, 0, tt.w, tt.h), tt.target)
			if got != tt.want {
				t.Errorf("scaledHeight(%dx%d, %d) = %d, want %d", tt.w, tt.h, tt.target, got, tt.want)
			}
		})
	}
}

func TestResample_AreaAveragesWhenShrinking(t *testing.T) {
	t.Parallel()

	// Alternating black and white columns average to mid grey.
	src := image.NewGray(image.Rect(0, 0, 8, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 8; x += 2 {
			src.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 4, 1))
	resample(dst, dst.Bounds(), src, draw.Src)

	for x := 0; x < 4; x++ {
		got := dst.RGBAAt(x, 0).R
		if got < 0x7d || got > 0x82 {
			t.Errorf("pixel %d = %#x, want about 0x80", x, got)
		}
	}
}
