package stitch

import (
	"image"
	"image/color"
	"image/draw"
)

var white = image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

// canvas is the provisional composite. The whole buffer is allocated up
// front but rows are painted white only when they are first handed out, so
// rows past the final write offset never get touched.
type canvas struct {
	img   *image.RGBA
	clean int // rows [0, clean) are white or hold page pixels
}

func newCanvas(width, height int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (c *canvas) width() int  { return c.img.Rect.Dx() }
func (c *canvas) height() int { return c.img.Rect.Dy() }

// claim whitens rows [y0, y1) if they have not been handed out before and
// returns the rectangle covering them at full width.
func (c *canvas) claim(y0, y1 int) image.Rectangle {
	r := image.Rect(0, y0, c.width(), y1)
	if y1 > c.clean {
		// Rows are claimed top to bottom, so this also covers any gap
		// (the top margin) between the last claim and y0.
		draw.Draw(c.img, image.Rect(0, c.clean, c.width(), y1), white, image.Point{}, draw.Src)
		c.clean = y1
	}
	return r
}

// trim returns the rows [0, height) as a view onto the canvas.
func (c *canvas) trim(height int) *image.RGBA {
	c.claim(0, height)
	return c.img.SubImage(image.Rect(0, 0, c.width(), height)).(*image.RGBA)
}
