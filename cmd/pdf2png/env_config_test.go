package main

// Notes:
// - loadEnvConfig: we test the PDF2PNG_* variables and the legacy deployment
//   names (V_WIDTH, H_WIDTH, RESIZE_FLG, INPUT_FOLDER_ID, OUTPUT_FOLDER_ID).
//   Invalid values are ignored, not errors.
// - applyEnvConfig: we test that env never overrides a config file value.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/qpng/go-pdf2png/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("PDF2PNG variables", func(t *testing.T) {
		t.Setenv("PDF2PNG_CONFIG", "/etc/pdf2png/work.yaml")
		t.Setenv("PDF2PNG_TIMEOUT", "2m")
		t.Setenv("PDF2PNG_PDFTOPPM", "/opt/poppler/bin/pdftoppm")
		t.Setenv("PDF2PNG_PORTRAIT_WIDTH", "800")
		t.Setenv("PDF2PNG_LANDSCAPE_WIDTH", "1200")
		t.Setenv("PDF2PNG_DPI", "300")
		t.Setenv("PDF2PNG_CROP", "true")
		t.Setenv("PDF2PNG_INPUT_DIR", "/in")
		t.Setenv("PDF2PNG_OUTPUT_DIR", "/out")
		t.Setenv("PDF2PNG_LOG", "/var/log/pdf2png.csv")
		t.Setenv("PDF2PNG_WORKERS", "4")

		got := loadEnvConfig()
		want := &envConfig{
			ConfigPath:     "/etc/pdf2png/work.yaml",
			Timeout:        2 * time.Minute,
			Pdftoppm:       "/opt/poppler/bin/pdftoppm",
			PortraitWidth:  800,
			LandscapeWidth: 1200,
			DPI:            300,
			Crop:           true,
			InputDir:       "/in",
			OutputDir:      "/out",
			Log:            "/var/log/pdf2png.csv",
			Workers:        4,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("legacy deployment names", func(t *testing.T) {
		t.Setenv("V_WIDTH", "700")
		t.Setenv("H_WIDTH", "1100")
		t.Setenv("RESIZE_FLG", "1")
		t.Setenv("INPUT_FOLDER_ID", "folder-in")
		t.Setenv("OUTPUT_FOLDER_ID", "folder-out")

		got := loadEnvConfig()
		if got.PortraitWidth != 700 || got.LandscapeWidth != 1100 {
			t.Errorf("widths = %d/%d, want 700/1100", got.PortraitWidth, got.LandscapeWidth)
		}
		if !got.Crop {
			t.Error("Crop = false, want true from RESIZE_FLG")
		}
		if got.InputFolderID != "folder-in" || got.OutputFolderID != "folder-out" {
			t.Errorf("folders = %q/%q", got.InputFolderID, got.OutputFolderID)
		}
	})

	t.Run("PDF2PNG name wins over legacy name", func(t *testing.T) {
		t.Setenv("PDF2PNG_PORTRAIT_WIDTH", "800")
		t.Setenv("V_WIDTH", "700")

		if got := loadEnvConfig().PortraitWidth; got != 800 {
			t.Errorf("PortraitWidth = %d, want 800", got)
		}
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("PDF2PNG_TIMEOUT", "soon")
		t.Setenv("PDF2PNG_DPI", "-300")
		t.Setenv("PDF2PNG_WORKERS", "many")
		t.Setenv("RESIZE_FLG", "maybe")

		got := loadEnvConfig()
		if got.Timeout != 0 || got.DPI != 0 || got.Workers != 0 || got.Crop {
			t.Errorf("loadEnvConfig() = %+v, want zero values", got)
		}
	})

	t.Run("false crop flag stays disabled", func(t *testing.T) {
		t.Setenv("RESIZE_FLG", "false")

		if loadEnvConfig().Crop {
			t.Error("Crop = true, want false")
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("PDF2PNG_DPII", "300")
	t.Setenv("PDF2PNG_DPI", "300")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "PDF2PNG_DPII") {
		t.Errorf("expected warning for PDF2PNG_DPII, got %q", out)
	}
	if strings.Contains(out, "PDF2PNG_DPI ") {
		t.Errorf("known variable PDF2PNG_DPI should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority between env and config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Pdftoppm:       "/env/pdftoppm",
		PortraitWidth:  800,
		LandscapeWidth: 1200,
		DPI:            300,
		Crop:           true,
		InputDir:       "/env/in",
		OutputDir:      "/env/out",
		Log:            "/env/log.csv",
		Workers:        4,
		InputFolderID:  "env-in",
		OutputFolderID: "env-out",
	}

	t.Run("fills empty config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		want := &config.Config{
			Input:   config.InputConfig{DefaultDir: "/env/in"},
			Output:  config.OutputConfig{DefaultDir: "/env/out", Log: "/env/log.csv"},
			Layout:  config.LayoutConfig{PortraitWidth: 800, LandscapeWidth: 1200},
			Render:  config.RenderConfig{DPI: 300, Pdftoppm: "/env/pdftoppm", Crop: config.CropConfig{Enabled: true}},
			Drive:   config.DriveConfig{InputFolderID: "env-in", OutputFolderID: "env-out"},
			Workers: 4,
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("applyEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("config file values win", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Layout: config.LayoutConfig{PortraitWidth: 640},
			Render: config.RenderConfig{DPI: 200},
			Drive:  config.DriveConfig{InputFolderID: "file-in"},
		}
		applyEnvConfig(env, cfg)

		if cfg.Layout.PortraitWidth != 640 {
			t.Errorf("PortraitWidth = %d, want 640", cfg.Layout.PortraitWidth)
		}
		if cfg.Render.DPI != 200 {
			t.Errorf("DPI = %d, want 200", cfg.Render.DPI)
		}
		if cfg.Drive.InputFolderID != "file-in" {
			t.Errorf("InputFolderID = %q, want file-in", cfg.Drive.InputFolderID)
		}
		if cfg.Layout.LandscapeWidth != 1200 {
			t.Errorf("LandscapeWidth = %d, want 1200 from env", cfg.Layout.LandscapeWidth)
		}
	})
}
