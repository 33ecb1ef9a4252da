package pdf2png

import (
	"errors"

	"github.com/qpng/go-pdf2png/internal/raster"
	"github.com/qpng/go-pdf2png/internal/stitch"
)

// Sentinel errors for library operations.
var (
	// ErrPageFit means a page would overrun the provisional canvas. The
	// document is abandoned and recorded as size-exceeded.
	ErrPageFit = stitch.ErrPageFit
	// ErrNoPages is returned for an input that resolves to zero pages.
	ErrNoPages = stitch.ErrNoPages

	ErrRasterize         = raster.ErrRasterize
	ErrRasterizerMissing = raster.ErrToolNotFound
	ErrDecodePage        = raster.ErrDecodePage
	ErrPageCountMismatch = errors.New("rasterizer page count does not match document")

	ErrEncodePNG = errors.New("PNG encoding failed")
	ErrWriteLog  = errors.New("writing outcome log failed")

	// Input and option validation errors.
	ErrInvalidInput       = errors.New("input must set exactly one of Pages, Files or Path")
	ErrEmptyDocumentID    = errors.New("document ID cannot be empty")
	ErrInvalidWidth       = errors.New("invalid width")
	ErrInvalidCrop        = errors.New("invalid crop")
	ErrInvalidDPI         = errors.New("invalid DPI")
	ErrInvalidCanvasLimit = errors.New("invalid provisional height")
)

// PageFitError carries the page that did not fit. It matches ErrPageFit
// with errors.Is.
type PageFitError = stitch.PageFitError
