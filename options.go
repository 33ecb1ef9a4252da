package pdf2png

import (
	"context"
	"log/slog"
	"time"

	"github.com/qpng/go-pdf2png/internal/raster"
	"github.com/qpng/go-pdf2png/internal/stitch"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	spec     stitch.Spec
	dpi      int
	crop     *Crop
	timeout  time.Duration
	pdftoppm string
}

// Composite geometry defaults.
const (
	DefaultPortraitWidth     = stitch.DefaultPortraitWidth
	DefaultLandscapeWidth    = stitch.DefaultLandscapeWidth
	DefaultProvisionalHeight = stitch.DefaultProvisionalHeight
	MaxHeight                = stitch.MaxPNGDimension
)

// defaultTimeout bounds rasterization of one document.
const defaultTimeout = 5 * time.Minute

// WithPortraitWidth sets the output width used when the first page is at
// least as tall as it is wide.
func WithPortraitWidth(px int) Option {
	return func(c *Converter) {
		c.cfg.spec.PortraitWidth = px
	}
}

// WithLandscapeWidth sets the output width used when the first page is
// wider than tall.
func WithLandscapeWidth(px int) Option {
	return func(c *Converter) {
		c.cfg.spec.LandscapeWidth = px
	}
}

// WithProvisionalHeight sets how many rows are reserved for a document up
// front. A document whose scaled pages need more is abandoned.
func WithProvisionalHeight(rows int) Option {
	return func(c *Converter) {
		c.cfg.spec.ProvisionalHeight = rows
	}
}

// WithDPI sets the rasterization density and the density stamped into the PNG.
func WithDPI(dpi int) Option {
	return func(c *Converter) {
		c.cfg.dpi = dpi
	}
}

// WithCrop removes insets from every page before stitching. nil disables
// cropping.
func WithCrop(crop *Crop) Option {
	return func(c *Converter) {
		c.cfg.crop = crop
	}
}

// WithTimeout bounds rasterization of a single document.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdf2png: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPdftoppm sets the pdftoppm executable used by the default rasterizer.
func WithPdftoppm(path string) Option {
	return func(c *Converter) {
		c.cfg.pdftoppm = path
	}
}

// WithRasterizer replaces the PDF rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}

// WithLogger sets the structured logger for composition events.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithOutcomeRecorder records the outcome of every document when Convert
// returns. Callers that store the PNG themselves and want the log to
// reflect stored files should record after storing instead.
func WithOutcomeRecorder(r OutcomeRecorder) Option {
	return func(c *Converter) {
		c.recorder = r
	}
}

// Rasterizer renders every page of a PDF into outDir at dpi and returns the
// page files in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error)
}

// pdftoppmRasterizer adapts raster.Pdftoppm to Rasterizer.
type pdftoppmRasterizer struct {
	tool raster.Pdftoppm
}

func (p *pdftoppmRasterizer) Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error) {
	pages, err := p.tool.Rasterize(ctx, pdfPath, outDir, dpi)
	if err != nil {
		return nil, err
	}
	return pages.Paths(), nil
}
