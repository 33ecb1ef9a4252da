package main

// Notes:
// - exitCodeFor: we test the sentinel errors from pdf2png, config and drive,
//   plus wrapped errors to verify the errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/config"
	"github.com/qpng/go-pdf2png/internal/drive"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Drive errors (exit 5)
		{"drive", drive.ErrDrive, ExitDrive},
		{"wrapped drive", fmt.Errorf("listing: %w", drive.ErrDrive), ExitDrive},

		// Rasterizer errors (exit 4)
		{"rasterize", pdf2png.ErrRasterize, ExitRasterizer},
		{"rasterizer missing", pdf2png.ErrRasterizerMissing, ExitRasterizer},
		{"decode page", pdf2png.ErrDecodePage, ExitRasterizer},
		{"page count mismatch", fmt.Errorf("%w: %w", pdf2png.ErrRasterize, pdf2png.ErrPageCountMismatch), ExitRasterizer},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"write png", ErrWritePNG, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"write log", pdf2png.ErrWriteLog, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"out of range", config.ErrOutOfRange, ExitUsage},
		{"invalid width", pdf2png.ErrInvalidWidth, ExitUsage},
		{"invalid dpi", pdf2png.ErrInvalidDPI, ExitUsage},
		{"invalid crop", pdf2png.ErrInvalidCrop, ExitUsage},
		{"invalid canvas limit", pdf2png.ErrInvalidCanvasLimit, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid crop insets", ErrInvalidCropInsets, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"no drive folder", ErrNoDriveFolder, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"page fit", pdf2png.ErrPageFit, ExitGeneral},
		{"reported batch failure", errReported{errors.New("2 of 3 conversion(s) failed")}, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := map[string]int{"ExitIO": ExitIO, "ExitRasterizer": ExitRasterizer, "ExitDrive": ExitDrive}
	seen := map[int]string{ExitSuccess: "ExitSuccess", ExitGeneral: "ExitGeneral", ExitUsage: "ExitUsage"}
	for name, code := range codes {
		if code >= 126 {
			t.Errorf("%s = %d, must be below 126", name, code)
		}
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
}
