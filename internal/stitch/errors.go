package stitch

import (
	"errors"
	"fmt"
)

// Sentinel errors for stitching.
var (
	ErrNoPages     = errors.New("document has no pages")
	ErrInvalidSpec = errors.New("invalid stitch spec")
	ErrPageFit     = errors.New("page does not fit in provisional canvas")
	ErrEmptyPage   = errors.New("page has zero width or height")
)

// PageFitError reports the page that would have overrun the provisional
// canvas. It matches ErrPageFit with errors.Is.
type PageFitError struct {
	Document    string
	Page        int // 1-based
	WriteOffset int
	PageHeight  int // height after resampling to the target width
	Limit       int
}

func (e *PageFitError) Error() string {
	return fmt.Sprintf("%s: page %d of %q needs rows [%d, %d) but canvas holds %d",
		ErrPageFit, e.Page, e.Document, e.WriteOffset, e.WriteOffset+e.PageHeight, e.Limit)
}

func (e *PageFitError) Unwrap() error {
	return ErrPageFit
}
