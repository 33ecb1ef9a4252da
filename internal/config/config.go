// Package config loads and validates YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qpng/go-pdf2png/internal/fileutil"
	"github.com/qpng/go-pdf2png/internal/stitch"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxFolderIDLength = 128 // Drive IDs are ~33 chars; leave room for shared drives
)

// Numeric bounds.
const (
	MinDPI     = 36
	MaxDPI     = 1200
	MaxWorkers = 64
)

// Crop insets applied when crop is enabled without explicit values. They
// trim the scanner border of an A4 page rasterized at 350 DPI.
const (
	DefaultCropHorizontal = 250
	DefaultCropVertical   = 350
)

// Config holds all configuration for document conversion.
// Zero values mean "not set"; callers layer defaults underneath.
type Config struct {
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Layout  LayoutConfig `yaml:"layout"`
	Render  RenderConfig `yaml:"render"`
	Drive   DriveConfig  `yaml:"drive"`
	Workers int          `yaml:"workers"` // 0 = sequential
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Log        string `yaml:"log"`        // Outcome log path (empty = no log)
}

// LayoutConfig defines composite geometry.
type LayoutConfig struct {
	PortraitWidth     int `yaml:"portraitWidth"`
	LandscapeWidth    int `yaml:"landscapeWidth"`
	ProvisionalHeight int `yaml:"provisionalHeight"`
}

// RenderConfig defines rasterization options.
type RenderConfig struct {
	DPI      int        `yaml:"dpi"`
	Pdftoppm string     `yaml:"pdftoppm"` // executable path (empty = look up on PATH)
	Timeout  string     `yaml:"timeout"`  // per document, Go duration syntax
	Crop     CropConfig `yaml:"crop"`
}

// CropConfig defines per-page insets removed after rasterization.
type CropConfig struct {
	Enabled bool `yaml:"enabled"`
	Left    int  `yaml:"left"`
	Top     int  `yaml:"top"`
	Right   int  `yaml:"right"`
	Bottom  int  `yaml:"bottom"`
}

// Insets returns the configured insets, or the default scanner-border
// insets when crop is enabled with all four left at zero.
func (c CropConfig) Insets() (left, top, right, bottom int) {
	if c.Left == 0 && c.Top == 0 && c.Right == 0 && c.Bottom == 0 {
		return DefaultCropHorizontal, DefaultCropVertical, DefaultCropHorizontal, DefaultCropVertical
	}
	return c.Left, c.Top, c.Right, c.Bottom
}

// DriveConfig defines the remote folders for the drive command.
type DriveConfig struct {
	InputFolderID  string `yaml:"inputFolderId"`
	OutputFolderID string `yaml:"outputFolderId"`
	Credentials    string `yaml:"credentials"` // service account key file
}

// TimeoutDuration parses Render.Timeout. An empty value returns zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout %q: %v", ErrConfigParse, c.Render.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: render.timeout %s is negative", ErrOutOfRange, d)
	}
	return d, nil
}

// Validate checks field lengths and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g. the CLI after merging env vars).
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.log", c.Output.Log, MaxPathLength},
		{"render.pdftoppm", c.Render.Pdftoppm, MaxPathLength},
		{"drive.credentials", c.Drive.Credentials, MaxPathLength},
		{"drive.inputFolderId", c.Drive.InputFolderID, MaxFolderIDLength},
		{"drive.outputFolderId", c.Drive.OutputFolderID, MaxFolderIDLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateRange("layout.portraitWidth", c.Layout.PortraitWidth, 1, stitch.MaxPNGDimension); err != nil {
		return err
	}
	if err := validateRange("layout.landscapeWidth", c.Layout.LandscapeWidth, 1, stitch.MaxPNGDimension); err != nil {
		return err
	}
	if c.Layout.ProvisionalHeight != 0 && c.Layout.ProvisionalHeight < stitch.MaxPNGDimension {
		return fmt.Errorf("%w: layout.provisionalHeight %d (min %d)", ErrOutOfRange, c.Layout.ProvisionalHeight, stitch.MaxPNGDimension)
	}
	if err := validateRange("render.dpi", c.Render.DPI, MinDPI, MaxDPI); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers %d (0-%d)", ErrOutOfRange, c.Workers, MaxWorkers)
	}

	crop := c.Render.Crop
	for _, f := range []struct {
		name  string
		value int
	}{
		{"render.crop.left", crop.Left},
		{"render.crop.top", crop.Top},
		{"render.crop.right", crop.Right},
		{"render.crop.bottom", crop.Bottom},
	} {
		if f.value < 0 {
			return fmt.Errorf("%w: %s %d is negative", ErrOutOfRange, f.name, f.value)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange accepts zero (unset) or a value in [lo, hi].
func validateRange(fieldName string, value, lo, hi int) error {
	if value == 0 {
		return nil
	}
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s %d (%d-%d)", ErrOutOfRange, fieldName, value, lo, hi)
	}
	return nil
}

// DefaultConfig returns a configuration with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := unmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-pdf2png", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries locations in order: current directory, ~/.config/go-pdf2png/,
// each with .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
