package pdf2png

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/qpng/go-pdf2png/internal/fileutil"
	"github.com/qpng/go-pdf2png/internal/pdfinfo"
	"github.com/qpng/go-pdf2png/internal/pngmeta"
	"github.com/qpng/go-pdf2png/internal/raster"
	"github.com/qpng/go-pdf2png/internal/stitch"
)

// Compile-time interface implementation checks.
var (
	_ Rasterizer        = (*pdftoppmRasterizer)(nil)
	_ raster.Rasterizer = (*raster.Pdftoppm)(nil)
	_ stitch.Pages      = (*raster.FilePages)(nil)
	_ OutcomeRecorder   = (*OutcomeLog)(nil)
)

// Converter turns documents into tall PNGs.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter keeps no per-document state and is safe for concurrent use,
// but every concurrent Convert holds its own provisional canvas.
type Converter struct {
	cfg        converterConfig
	stitcher   *stitch.Stitcher
	rasterizer Rasterizer
	recorder   OutcomeRecorder
	logger     *slog.Logger
	encoder    pngmeta.Encoder
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithDPI, WithCrop, WithLogger).
// Returns an error if the resulting geometry, DPI or crop is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			spec:    stitch.DefaultSpec(),
			dpi:     DefaultDPI,
			timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.rasterizer == nil {
		c.rasterizer = &pdftoppmRasterizer{tool: raster.Pdftoppm{Bin: c.cfg.pdftoppm}}
	}

	s, err := stitch.New(c.cfg.spec, c.logger)
	if err != nil {
		return nil, err
	}
	c.stitcher = s

	return c, nil
}

// validate maps geometry errors onto the package's public sentinels.
func (cfg *converterConfig) validate() error {
	s := cfg.spec
	if s.PortraitWidth < 1 || s.PortraitWidth > MaxHeight {
		return fmt.Errorf("%w: portrait width %d (must be 1-%d)", ErrInvalidWidth, s.PortraitWidth, MaxHeight)
	}
	if s.LandscapeWidth < 1 || s.LandscapeWidth > MaxHeight {
		return fmt.Errorf("%w: landscape width %d (must be 1-%d)", ErrInvalidWidth, s.LandscapeWidth, MaxHeight)
	}
	if s.ProvisionalHeight < s.MaxHeight {
		return fmt.Errorf("%w: %d (must be at least %d)", ErrInvalidCanvasLimit, s.ProvisionalHeight, s.MaxHeight)
	}
	if cfg.dpi < MinDPI || cfg.dpi > MaxDPI {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidDPI, cfg.dpi, MinDPI, MaxDPI)
	}
	return cfg.crop.Validate()
}

// Convert runs the full pipeline for one document.
//
// On ErrPageFit the document is recorded as size-exceeded and no Result is
// returned. The context bounds rasterization and is checked before each
// page is decoded; drawing a decoded page is never interrupted.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	docID := documentID(input)
	if docID == "" {
		return nil, ErrEmptyDocumentID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, cleanup, err := c.pages(ctx, docID, input)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if c.cfg.crop != nil {
		pages = raster.Crop(pages, raster.Insets(*c.cfg.crop))
	}

	res, st, err := c.stitcher.Stitch(docID, &ctxPages{ctx: ctx, Pages: pages})
	if err != nil {
		if errors.Is(err, ErrPageFit) {
			c.record(docID, OutcomeSizeExceeded)
		}
		return nil, err
	}

	outcome := OutcomeNormal
	if st.OverflowDetected {
		outcome = OutcomeResized
	}

	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, res.Image, c.cfg.dpi); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePNG, err)
	}
	c.record(docID, outcome)

	b := res.Image.Bounds()
	c.logger.Info("document finalized",
		"document", docID,
		"pages", st.PagesPlaced,
		"width", b.Dx(),
		"height", b.Dy(),
		"outcome", outcome.String())

	return &Result{
		DocumentID: docID,
		PNG:        buf.Bytes(),
		Width:      b.Dx(),
		Height:     b.Dy(),
		DPI:        c.cfg.dpi,
		Pages:      st.PagesPlaced,
		Outcome:    outcome,
	}, nil
}

// Close releases resources. It is currently a no-op.
func (c *Converter) Close() error {
	return nil
}

// pages resolves input to a page source. cleanup is always non-nil.
func (c *Converter) pages(ctx context.Context, docID string, input Input) (stitch.Pages, func(), error) {
	noop := func() {}

	switch {
	case len(input.Pages) > 0:
		return stitch.Images(input.Pages), noop, nil
	case len(input.Files) > 0:
		return raster.Files(input.Files...), noop, nil
	}

	dir, cleanup, err := fileutil.MakeTempDir(docID)
	if err != nil {
		return nil, noop, err
	}

	want := c.probe(docID, input.Path)
	if want == 0 {
		cleanup()
		return nil, noop, fmt.Errorf("%w: %s", ErrNoPages, input.Path)
	}

	rctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	paths, err := c.rasterizer.Rasterize(rctx, input.Path, dir, c.cfg.dpi)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	if want > 0 && len(paths) != want {
		cleanup()
		return nil, noop, fmt.Errorf("%w: %w: %s has %d pages, got %d images",
			ErrRasterize, ErrPageCountMismatch, docID, want, len(paths))
	}

	c.logger.Debug("document rasterized", "document", docID, "pages", len(paths), "dpi", c.cfg.dpi)
	return raster.Files(paths...), cleanup, nil
}

// probe returns the page count of the PDF at path, or -1 when the file
// cannot be parsed. pdftoppm copes with damaged files the parser rejects,
// so a failed probe only skips the page count check.
func (c *Converter) probe(docID, path string) int {
	info, err := pdfinfo.Probe(path)
	if err != nil {
		c.logger.Warn("cannot read page tree, skipping page count check",
			"document", docID,
			"error", err)
		return -1
	}
	c.logger.Debug("document probed",
		"document", docID,
		"pages", info.Pages,
		"portrait", info.First.Portrait())
	return info.Pages
}

func (c *Converter) record(docID string, outcome Outcome) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(docID, outcome); err != nil {
		c.logger.Warn("outcome not recorded", "document", docID, "outcome", outcome.String(), "error", err)
	}
}

// validateInput checks that exactly one page source is set.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
func validateInput(input Input) error {
	n := 0
	if len(input.Pages) > 0 {
		n++
	}
	if len(input.Files) > 0 {
		n++
	}
	if input.Path != "" {
		n++
	}
	switch n {
	case 0:
		return ErrNoPages
	case 1:
		return nil
	}
	return ErrInvalidInput
}

func documentID(input Input) string {
	if input.DocumentID != "" {
		return input.DocumentID
	}
	switch {
	case input.Path != "":
		return fileutil.DocumentID(input.Path)
	case len(input.Files) > 0:
		return fileutil.DocumentID(input.Files[0])
	}
	return ""
}

// ctxPages stops page decoding once ctx is done.
type ctxPages struct {
	stitch.Pages
	ctx context.Context
}

func (p *ctxPages) Page(i int) (image.Image, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	return p.Pages.Page(i)
}
