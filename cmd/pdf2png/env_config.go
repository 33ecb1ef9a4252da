package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/qpng/go-pdf2png/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // PDF2PNG_CONFIG: config file path
	Timeout    time.Duration // PDF2PNG_TIMEOUT: rasterization timeout
	Pdftoppm   string        // PDF2PNG_PDFTOPPM: rasterizer executable

	// Tier 2 - Layout and rendering
	PortraitWidth  int  // PDF2PNG_PORTRAIT_WIDTH or V_WIDTH
	LandscapeWidth int  // PDF2PNG_LANDSCAPE_WIDTH or H_WIDTH
	DPI            int  // PDF2PNG_DPI
	Crop           bool // PDF2PNG_CROP or RESIZE_FLG

	// Tier 3 - I/O
	InputDir       string // PDF2PNG_INPUT_DIR
	OutputDir      string // PDF2PNG_OUTPUT_DIR
	Log            string // PDF2PNG_LOG
	Workers        int    // PDF2PNG_WORKERS
	InputFolderID  string // INPUT_FOLDER_ID
	OutputFolderID string // OUTPUT_FOLDER_ID
}

// knownEnvVars lists valid PDF2PNG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDF2PNG_CONFIG":          true,
	"PDF2PNG_TIMEOUT":         true,
	"PDF2PNG_PDFTOPPM":        true,
	"PDF2PNG_PORTRAIT_WIDTH":  true,
	"PDF2PNG_LANDSCAPE_WIDTH": true,
	"PDF2PNG_DPI":             true,
	"PDF2PNG_CROP":            true,
	"PDF2PNG_INPUT_DIR":       true,
	"PDF2PNG_OUTPUT_DIR":      true,
	"PDF2PNG_LOG":             true,
	"PDF2PNG_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("PDF2PNG_CONFIG"),
		Pdftoppm:       os.Getenv("PDF2PNG_PDFTOPPM"),
		PortraitWidth:  envInt("PDF2PNG_PORTRAIT_WIDTH", "V_WIDTH"),
		LandscapeWidth: envInt("PDF2PNG_LANDSCAPE_WIDTH", "H_WIDTH"),
		DPI:            envInt("PDF2PNG_DPI"),
		Crop:           envBool("PDF2PNG_CROP", "RESIZE_FLG"),
		InputDir:       os.Getenv("PDF2PNG_INPUT_DIR"),
		OutputDir:      os.Getenv("PDF2PNG_OUTPUT_DIR"),
		Log:            os.Getenv("PDF2PNG_LOG"),
		Workers:        envInt("PDF2PNG_WORKERS"),
		InputFolderID:  os.Getenv("INPUT_FOLDER_ID"),
		OutputFolderID: os.Getenv("OUTPUT_FOLDER_ID"),
	}

	if timeout := os.Getenv("PDF2PNG_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// envInt returns the first positive integer found among names.
func envInt(names ...string) int {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// envBool reports whether any of names holds a true value ("1", "true", ...).
func envBool(names ...string) bool {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			if b, err := strconv.ParseBool(v); err == nil && b {
				return true
			}
		}
	}
	return false
}

// warnUnknownEnvVars logs warnings for unrecognized PDF2PNG_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PDF2PNG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero,
// so an explicit config file wins over the environment. CLI flags are
// applied later by the merge functions and win over both.
// The timeout is resolved separately (flag > env > config).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Pdftoppm != "" && cfg.Render.Pdftoppm == "" {
		cfg.Render.Pdftoppm = env.Pdftoppm
	}

	if env.PortraitWidth > 0 && cfg.Layout.PortraitWidth == 0 {
		cfg.Layout.PortraitWidth = env.PortraitWidth
	}
	if env.LandscapeWidth > 0 && cfg.Layout.LandscapeWidth == 0 {
		cfg.Layout.LandscapeWidth = env.LandscapeWidth
	}
	if env.DPI > 0 && cfg.Render.DPI == 0 {
		cfg.Render.DPI = env.DPI
	}
	if env.Crop {
		cfg.Render.Crop.Enabled = true
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Log != "" && cfg.Output.Log == "" {
		cfg.Output.Log = env.Log
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}

	if env.InputFolderID != "" && cfg.Drive.InputFolderID == "" {
		cfg.Drive.InputFolderID = env.InputFolderID
	}
	if env.OutputFolderID != "" && cfg.Drive.OutputFolderID == "" {
		cfg.Drive.OutputFolderID = env.OutputFolderID
	}
}
