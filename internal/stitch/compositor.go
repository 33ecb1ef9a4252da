package stitch

import (
	"image"

	"golang.org/x/image/draw"
)

// placePage returns the canvas rows a page of the given bounds would
// occupy at the current write offset, or a *PageFitError if they run past
// the canvas.
func placePage(st *State, c *canvas, page image.Rectangle, index int, doc string) (image.Rectangle, error) {
	h := scaledHeight(page, st.TargetWidth)
	if st.WriteOffset+h > c.height() {
		return image.Rectangle{}, &PageFitError{
			Document:    doc,
			Page:        index + 1,
			WriteOffset: st.WriteOffset,
			PageHeight:  h,
			Limit:       c.height(),
		}
	}
	return image.Rect(0, st.WriteOffset, st.TargetWidth, st.WriteOffset+h), nil
}

// compositePage writes page into the canvas at the current write offset and
// advances the offset. Nothing is written when the page does not fit.
// It reports true the first time the offset passes maxHeight.
func compositePage(st *State, c *canvas, page image.Image, index int, doc string, maxHeight int) (crossed bool, err error) {
	rows, err := placePage(st, c, page.Bounds(), index, doc)
	if err != nil {
		return false, err
	}
	dr := c.claim(rows.Min.Y, rows.Max.Y)
	// Over onto white rows flattens transparency to white.
	resample(c.img, dr, page, draw.Over)

	st.WriteOffset = rows.Max.Y
	st.PagesPlaced++
	if !st.OverflowDetected && st.WriteOffset > maxHeight {
		st.OverflowDetected = true
		st.OverflowPage = index + 1
		return true, nil
	}
	return false, nil
}
