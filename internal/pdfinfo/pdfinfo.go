// Package pdfinfo reads page geometry from a PDF without rendering it.
package pdfinfo

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// ErrProbe is returned when the file cannot be parsed as a PDF page tree.
var ErrProbe = errors.New("cannot read PDF structure")

// Page is the geometry of one page in PDF points.
type Page struct {
	Width, Height float64
	Rotate        int // degrees clockwise, normalized to 0, 90, 180 or 270
}

// Portrait reports whether the page renders at least as tall as wide.
func (p Page) Portrait() bool {
	w, h := p.Width, p.Height
	if p.Rotate == 90 || p.Rotate == 270 {
		w, h = h, w
	}
	return h >= w
}

// Info summarizes a document.
type Info struct {
	Pages int
	First Page
}

// Probe opens path and reports its page count and first-page geometry.
func Probe(path string) (*Info, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProbe, err)
	}
	defer func() { _ = r.Close() }()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("%w: page count: %v", ErrProbe, err)
	}
	info := &Info{Pages: n}
	if n == 0 {
		return info, nil
	}

	_, dict, err := pagetree.GetPage(r, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: page 1: %v", ErrProbe, err)
	}
	info.First, err = pageGeometry(r, dict)
	if err != nil {
		return nil, fmt.Errorf("%w: page 1: %v", ErrProbe, err)
	}
	return info, nil
}

func pageGeometry(r pdf.Getter, dict pdf.Dict) (Page, error) {
	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return Page{}, err
	}
	if box == nil {
		return Page{}, errors.New("missing MediaBox")
	}
	p := Page{
		Width:  math.Abs(box.URx - box.LLx),
		Height: math.Abs(box.URy - box.LLy),
	}

	if obj := dict["Rotate"]; obj != nil {
		rot, err := pdf.GetNumber(r, obj)
		if err != nil {
			return Page{}, err
		}
		p.Rotate = ((int(rot)%360 + 360) % 360) / 90 * 90
	}
	return p, nil
}
