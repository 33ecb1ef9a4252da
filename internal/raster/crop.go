package raster

import (
	"fmt"
	"image"
)

// Insets are pixel margins removed from each side of a page.
type Insets struct {
	Left, Top, Right, Bottom int
}

// IsZero reports whether no pixels would be removed.
func (in Insets) IsZero() bool {
	return in == Insets{}
}

// Apply returns the part of r left after removing the insets.
func (in Insets) Apply(r image.Rectangle) (image.Rectangle, error) {
	out := image.Rect(r.Min.X+in.Left, r.Min.Y+in.Top, r.Max.X-in.Right, r.Max.Y-in.Bottom)
	if out.Dx() <= 0 || out.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %+v on %dx%d page", ErrCropTooLarge, in, r.Dx(), r.Dy())
	}
	return out, nil
}

// Source is the subset of stitch.Pages that Crop wraps.
type Source interface {
	Len() int
	Page(i int) (image.Image, error)
}

type cropped struct {
	src    Source
	insets Insets
}

// Crop returns pages whose images are src's pages with insets removed.
// Zero insets return src unchanged.
func Crop(src Source, insets Insets) Source {
	if insets.IsZero() {
		return src
	}
	return &cropped{src: src, insets: insets}
}

func (c *cropped) Len() int { return c.src.Len() }

func (c *cropped) Page(i int) (image.Image, error) {
	img, err := c.src.Page(i)
	if err != nil {
		return nil, err
	}
	r, err := c.insets.Apply(img.Bounds())
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", i+1, err)
	}
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r), nil
	}
	return &window{Image: img, r: r}, nil
}

// window restricts the bounds of an image without copying it.
type window struct {
	image.Image
	r image.Rectangle
}

func (w *window) Bounds() image.Rectangle { return w.r }
