package main

// Notes:
// - buildOptions is verified end to end: the options build a real Converter
//   that stitches in-memory pages, so no rasterizer is needed.
// - resolveTimeoutWithEnv: we test duration parsing, validation, and priority.

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseCropInsets - Crop flag parsing
// ---------------------------------------------------------------------------

func TestParseCropInsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    [4]int
		wantErr bool
	}{
		{"four values", "250,350,250,350", [4]int{250, 350, 250, 350}, false},
		{"spaces allowed", " 1, 2 ,3,4 ", [4]int{1, 2, 3, 4}, false},
		{"zeros", "0,0,0,0", [4]int{}, false},
		{"too few", "1,2,3", [4]int{}, true},
		{"too many", "1,2,3,4,5", [4]int{}, true},
		{"negative", "1,-2,3,4", [4]int{}, true},
		{"not a number", "a,b,c,d", [4]int{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseCropInsets(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCropInsets) {
					t.Errorf("parseCropInsets(%q) error = %v, want ErrInvalidCropInsets", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCropInsets(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("parseCropInsets(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI values override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Output: config.OutputConfig{Log: "/cfg/log.csv"},
		Layout: config.LayoutConfig{PortraitWidth: 640, LandscapeWidth: 1000},
		Render: config.RenderConfig{DPI: 350, Pdftoppm: "/cfg/pdftoppm"},
	}

	mergeLayoutFlags(&layoutFlags{portraitWidth: 800}, cfg)
	if err := mergeRenderFlags(&renderFlags{dpi: 300, cropInsets: "1,2,3,4"}, cfg); err != nil {
		t.Fatalf("mergeRenderFlags() error = %v", err)
	}
	mergeLogFlags(&logFlags{path: "/cli/log.csv"}, cfg)

	want := &config.Config{
		Output: config.OutputConfig{Log: "/cli/log.csv"},
		Layout: config.LayoutConfig{PortraitWidth: 800, LandscapeWidth: 1000},
		Render: config.RenderConfig{
			DPI:      300,
			Pdftoppm: "/cfg/pdftoppm",
			Crop:     config.CropConfig{Enabled: true, Left: 1, Top: 2, Right: 3, Bottom: 4},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("merged config mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRenderFlags_CropOnly(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if err := mergeRenderFlags(&renderFlags{crop: true}, cfg); err != nil {
		t.Fatal(err)
	}
	if l, tp, r, b := cfg.Render.Crop.Insets(); !cfg.Render.Crop.Enabled || l != 250 || tp != 350 || r != 250 || b != 350 {
		t.Errorf("crop = %+v, want enabled with default insets", cfg.Render.Crop)
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeoutWithEnv - Timeout duration resolution with env var support
// ---------------------------------------------------------------------------

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flagValue   string
		envValue    time.Duration
		configValue string
		want        time.Duration
		errSubstr   string
	}{
		{name: "all empty uses default", want: 0},
		{name: "flag only", flagValue: "2m", want: 2 * time.Minute},
		{name: "env only", envValue: 45 * time.Second, want: 45 * time.Second},
		{name: "config only", configValue: "30s", want: 30 * time.Second},
		{name: "flag overrides env and config", flagValue: "5m", envValue: 45 * time.Second, configValue: "30s", want: 5 * time.Minute},
		{name: "env overrides config", envValue: 2 * time.Minute, configValue: "30s", want: 2 * time.Minute},
		{name: "invalid flag format", flagValue: "abc", errSubstr: "invalid timeout"},
		{name: "invalid config format", configValue: "xyz", errSubstr: "invalid timeout"},
		{name: "negative duration", flagValue: "-5s", errSubstr: "must be positive"},
		{name: "zero flag overrides valid env and config", flagValue: "0s", envValue: time.Minute, configValue: "30s", errSubstr: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeoutWithEnv(tt.flagValue, tt.envValue, tt.configValue)
			if tt.errSubstr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error = %v, want error containing %q", err, tt.errSubstr)
				}
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeoutWithEnv(%q, %v, %q) = %v, want %v",
					tt.flagValue, tt.envValue, tt.configValue, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Config to converter options
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Layout: config.LayoutConfig{PortraitWidth: 100, LandscapeWidth: 300},
		Render: config.RenderConfig{
			DPI:  200,
			Crop: config.CropConfig{Enabled: true, Left: 10, Top: 10, Right: 10, Bottom: 10},
		},
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	conv, err := pdf2png.NewConverter(buildOptions(cfg, time.Minute, logger)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	// 120x220 cropped to 100x200: portrait, 100 wide
	res, err := conv.Convert(context.Background(), pdf2png.Input{
		DocumentID: "doc",
		Pages:      []image.Image{image.NewGray(image.Rect(0, 0, 120, 220))},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Width != 100 || res.Height != 210 || res.DPI != 200 {
		t.Errorf("Result = %dx%d at %d DPI, want 100x210 at 200 DPI", res.Width, res.Height, res.DPI)
	}
}

func TestBuildOptions_InvalidConfigFailsConverter(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Render: config.RenderConfig{DPI: 5}}
	_, err := pdf2png.NewConverter(buildOptions(cfg, 0, slog.Default())...)
	if !errors.Is(err, pdf2png.ErrInvalidDPI) {
		t.Errorf("NewConverter() error = %v, want ErrInvalidDPI", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveLogPath / TestOpenOutcomeLog - Outcome log location
// ---------------------------------------------------------------------------

func TestResolveLogPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfgLog    string
		outputDir string
		disabled  bool
		want      string
	}{
		{"disabled wins", "/cfg/log.csv", "/out", true, ""},
		{"configured path", "/cfg/log.csv", "/out", false, "/cfg/log.csv"},
		{"inside output dir", "", "/out", false, filepath.Join("/out", "log.csv")},
		{"output is a png file", "", "/out/one.png", false, "log.csv"},
		{"no output dir", "", "", false, "log.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Output: config.OutputConfig{Log: tt.cfgLog}}
			if got := resolveLogPath(cfg, tt.outputDir, tt.disabled); got != tt.want {
				t.Errorf("resolveLogPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenOutcomeLog(t *testing.T) {
	t.Parallel()

	t.Run("empty path disables the log", func(t *testing.T) {
		t.Parallel()

		l, err := openOutcomeLog("", time.Now)
		if err != nil || l != nil {
			t.Errorf("openOutcomeLog(\"\") = %v, %v; want nil, nil", l, err)
		}
	})

	t.Run("creates parent directories and uses now", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "log.csv")
		now := func() time.Time { return time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC) }

		l, err := openOutcomeLog(path, now)
		if err != nil {
			t.Fatalf("openOutcomeLog() error = %v", err)
		}
		if err := l.Record("doc", pdf2png.OutcomeNormal); err != nil {
			t.Fatal(err)
		}
		if err := l.Close(); err != nil {
			t.Fatal(err)
		}

		data := readFile(t, path)
		if data != "2024-01-15 09:30:00,doc,normal\n" {
			t.Errorf("log = %q", data)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		quiet     bool
		verbose   bool
		wantDebug bool
		wantWarn  bool
	}{
		{"default shows warnings", false, false, false, true},
		{"verbose shows debug", false, true, true, true},
		{"quiet hides warnings", true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.quiet, tt.verbose)
			logger.Debug("debug line")
			logger.Warn("warn line")

			if got := strings.Contains(buf.String(), "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(buf.String(), "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}
