package pdf2png

import (
	"fmt"
	"image"
)

// Outcome classifies a processed document.
type Outcome string

// Document outcomes, as written to the outcome log.
const (
	OutcomeNormal       Outcome = "normal"
	OutcomeResized      Outcome = "resized"
	OutcomeSizeExceeded Outcome = "size-exceeded"
)

func (o Outcome) String() string { return string(o) }

// DPI bounds.
const (
	MinDPI     = 36
	MaxDPI     = 1200
	DefaultDPI = 350
)

// Crop is a set of pixel insets removed from every page before stitching.
type Crop struct {
	Left, Top, Right, Bottom int
}

// DefaultCrop returns insets that remove the scanner border of an A4 page
// rasterized at 350 DPI.
func DefaultCrop() *Crop {
	return &Crop{Left: 250, Top: 350, Right: 250, Bottom: 350}
}

// Validate checks that no inset is negative.
// Returns nil if c is nil (nil means no cropping).
func (c *Crop) Validate() error {
	if c == nil {
		return nil
	}
	if c.Left < 0 || c.Top < 0 || c.Right < 0 || c.Bottom < 0 {
		return fmt.Errorf("%w: insets must not be negative (left=%d top=%d right=%d bottom=%d)",
			ErrInvalidCrop, c.Left, c.Top, c.Right, c.Bottom)
	}
	return nil
}

// Input describes one document. Set exactly one of Pages, Files or Path.
type Input struct {
	// DocumentID names the document in logs and the outcome record.
	// Defaults to the base name of Path or of the first entry in Files.
	DocumentID string

	// Pages are already-rendered page images, in page order.
	Pages []image.Image

	// Files are page image files (PNG, JPEG, TIFF, BMP, WebP), in page order.
	Files []string

	// Path is a PDF rasterized with the converter's rasterizer.
	Path string
}

// Result is a finished composite.
type Result struct {
	DocumentID string
	PNG        []byte
	Width      int
	Height     int
	DPI        int
	Pages      int
	Outcome    Outcome
}
