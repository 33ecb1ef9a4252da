package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/qpng/go-pdf2png/internal/process"
)

// DefaultPdftoppm is the executable looked up on PATH when none is set.
const DefaultPdftoppm = "pdftoppm"

const pagePrefix = "page"

// Rasterizer renders every page of a document into outDir at dpi.
type Rasterizer interface {
	Rasterize(ctx context.Context, docPath, outDir string, dpi int) (*FilePages, error)
}

// Pdftoppm rasterizes PDFs with poppler's pdftoppm.
type Pdftoppm struct {
	// Bin is the executable path or name. Empty means DefaultPdftoppm.
	Bin string
}

var _ Rasterizer = (*Pdftoppm)(nil)

// Rasterize runs pdftoppm and returns the produced pages in page order.
func (p *Pdftoppm) Rasterize(ctx context.Context, docPath, outDir string, dpi int) (*FilePages, error) {
	bin := p.Bin
	if bin == "" {
		bin = DefaultPdftoppm
	}

	cmd := exec.CommandContext(ctx, bin, p.args(docPath, outDir, dpi)...)
	process.Prepare(cmd)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrRasterize, ctxErr)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w: %s", ErrRasterize, ErrToolNotFound, bin)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%w: %s: %v", ErrRasterize, filepath.Base(docPath), err)
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrRasterize, filepath.Base(docPath), err, msg)
	}

	paths, err := collectPages(outDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrRasterize, ErrNoOutput, filepath.Base(docPath))
	}
	return Files(paths...), nil
}

func (p *Pdftoppm) args(docPath, outDir string, dpi int) []string {
	return []string{
		"-r", strconv.Itoa(dpi),
		"-png",
		docPath,
		filepath.Join(outDir, pagePrefix),
	}
}

// collectPages finds pdftoppm's output in dir and orders it by page number.
// pdftoppm pads the number to the width of the page count, so a plain
// lexical sort is not enough once outputs from different runs mix.
func collectPages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pagePrefix+"-*.png"))
	if err != nil {
		return nil, fmt.Errorf("%w: listing output: %v", ErrRasterize, err)
	}

	type numbered struct {
		n    int
		path string
	}
	pages := make([]numbered, 0, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".png")
		n, err := strconv.Atoi(strings.TrimPrefix(base, pagePrefix+"-"))
		if err != nil {
			continue
		}
		pages = append(pages, numbered{n: n, path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}
