package raster

import (
	"fmt"
	"image"
	"os"

	// Page image formats accepted in image-list mode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FilePages is an ordered list of page image files decoded on demand.
type FilePages struct {
	paths []string
}

// Files returns pages backed by the given files, in the given order.
func Files(paths ...string) *FilePages {
	return &FilePages{paths: append([]string(nil), paths...)}
}

// Len returns the number of pages.
func (f *FilePages) Len() int { return len(f.paths) }

// Paths returns the backing files in page order.
func (f *FilePages) Paths() []string { return append([]string(nil), f.paths...) }

// Page decodes page i (0-based).
func (f *FilePages) Page(i int) (image.Image, error) {
	if i < 0 || i >= len(f.paths) {
		return nil, fmt.Errorf("%w: page index %d out of range [0, %d)", ErrDecodePage, i, len(f.paths))
	}
	path := f.paths[i]

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodePage, err)
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodePage, path, err)
	}
	return img, nil
}
