package main

import (
	"errors"
	"os"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/config"
	"github.com/qpng/go-pdf2png/internal/drive"
)

// Exit codes for pdf2png CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error, including abandoned documents
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitRasterizer = 4 // pdftoppm missing or failing
	ExitDrive      = 5 // Google Drive errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Remote storage errors (exit 5)
	if errors.Is(err, drive.ErrDrive) {
		return ExitDrive
	}

	// Rasterizer errors (exit 4)
	if errors.Is(err, pdf2png.ErrRasterize) ||
		errors.Is(err, pdf2png.ErrRasterizerMissing) ||
		errors.Is(err, pdf2png.ErrDecodePage) {
		return ExitRasterizer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWritePNG) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, pdf2png.ErrWriteLog) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrOutOfRange) ||
		errors.Is(err, pdf2png.ErrInvalidWidth) ||
		errors.Is(err, pdf2png.ErrInvalidDPI) ||
		errors.Is(err, pdf2png.ErrInvalidCrop) ||
		errors.Is(err, pdf2png.ErrInvalidCanvasLimit) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidCropInsets) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrNoDriveFolder) {
		return ExitUsage
	}

	return ExitGeneral
}
