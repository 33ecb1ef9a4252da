package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/config"
	"github.com/qpng/go-pdf2png/internal/hints"
)

// Sentinel errors for parameter resolution.
var (
	ErrInvalidCropInsets = errors.New("invalid crop insets")
	ErrInvalidTimeout    = errors.New("invalid timeout")
)

// defaultLogName is the outcome log written next to the outputs.
const defaultLogName = "log.csv"

// loadConfig resolves the config file (flag, then PDF2PNG_CONFIG) and layers
// environment values underneath it.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeLayoutFlags merges layout flags into config. CLI values override config values.
func mergeLayoutFlags(f *layoutFlags, cfg *config.Config) {
	if f.portraitWidth != 0 {
		cfg.Layout.PortraitWidth = f.portraitWidth
	}
	if f.landscapeWidth != 0 {
		cfg.Layout.LandscapeWidth = f.landscapeWidth
	}
}

// mergeRenderFlags merges rasterization flags into config.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) error {
	if f.dpi != 0 {
		cfg.Render.DPI = f.dpi
	}
	if f.pdftoppm != "" {
		cfg.Render.Pdftoppm = f.pdftoppm
	}
	if f.crop {
		cfg.Render.Crop.Enabled = true
	}
	if f.cropInsets != "" {
		insets, err := parseCropInsets(f.cropInsets)
		if err != nil {
			return err
		}
		cfg.Render.Crop = config.CropConfig{
			Enabled: true,
			Left:    insets[0],
			Top:     insets[1],
			Right:   insets[2],
			Bottom:  insets[3],
		}
	}
	return nil
}

// mergeLogFlags merges outcome log flags into config.
func mergeLogFlags(f *logFlags, cfg *config.Config) {
	if f.path != "" {
		cfg.Output.Log = f.path
	}
}

// parseCropInsets parses "left,top,right,bottom".
func parseCropInsets(value string) ([4]int, error) {
	var insets [4]int
	parts := strings.Split(value, ",")
	if len(parts) != len(insets) {
		return insets, fmt.Errorf("%w: %q (want left,top,right,bottom)", ErrInvalidCropInsets, value)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return insets, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidCropInsets, p)
		}
		insets[i] = n
	}
	return insets, nil
}

// resolveTimeoutWithEnv determines the rasterization timeout.
// Priority: flag > env > config. Zero means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parsePositiveDuration(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parsePositiveDuration(configValue)
	}
	return 0, nil
}

func parsePositiveDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use format like 30s, 2m, 1m30s)", ErrInvalidTimeout, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidTimeout, value)
	}
	return d, nil
}

// buildOptions translates a merged config into converter options.
func buildOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) []pdf2png.Option {
	opts := []pdf2png.Option{pdf2png.WithLogger(logger)}

	if cfg.Layout.PortraitWidth > 0 {
		opts = append(opts, pdf2png.WithPortraitWidth(cfg.Layout.PortraitWidth))
	}
	if cfg.Layout.LandscapeWidth > 0 {
		opts = append(opts, pdf2png.WithLandscapeWidth(cfg.Layout.LandscapeWidth))
	}
	if cfg.Layout.ProvisionalHeight > 0 {
		opts = append(opts, pdf2png.WithProvisionalHeight(cfg.Layout.ProvisionalHeight))
	}
	if cfg.Render.DPI > 0 {
		opts = append(opts, pdf2png.WithDPI(cfg.Render.DPI))
	}
	if cfg.Render.Pdftoppm != "" {
		opts = append(opts, pdf2png.WithPdftoppm(cfg.Render.Pdftoppm))
	}
	if cfg.Render.Crop.Enabled {
		l, t, r, b := cfg.Render.Crop.Insets()
		opts = append(opts, pdf2png.WithCrop(&pdf2png.Crop{Left: l, Top: t, Right: r, Bottom: b}))
	}
	if timeout > 0 {
		opts = append(opts, pdf2png.WithTimeout(timeout))
	}
	return opts
}

// newLogger builds the library logger. Composition events are debug or
// warning level, so the default shows only warnings.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveLogPath returns the outcome log path, or "" when disabled.
// Without an explicit path the log is written into outputDir.
func resolveLogPath(cfg *config.Config, outputDir string, disabled bool) string {
	switch {
	case disabled:
		return ""
	case cfg.Output.Log != "":
		return cfg.Output.Log
	case outputDir != "" && !strings.EqualFold(filepath.Ext(outputDir), ".png"):
		return filepath.Join(outputDir, defaultLogName)
	}
	return defaultLogName
}

// openOutcomeLog opens the log at path. An empty path returns nil.
func openOutcomeLog(path string, now func() time.Time) (*pdf2png.OutcomeLog, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating log directory: %w%s", err, hints.ForOutputDirectory())
	}
	l, err := pdf2png.OpenOutcomeLog(path)
	if err != nil {
		return nil, err
	}
	l.Now = now
	return l, nil
}

// outcomeSink records the outcome of each document once its PNG has been
// stored. A nil sink records nothing.
type outcomeSink struct {
	rec    pdf2png.OutcomeRecorder
	logger *slog.Logger
}

// newOutcomeSink returns nil when the log is disabled, so no typed nil
// reaches the OutcomeRecorder interface.
func newOutcomeSink(l *pdf2png.OutcomeLog, logger *slog.Logger) *outcomeSink {
	if l == nil {
		return nil
	}
	return &outcomeSink{rec: l, logger: logger}
}

func (s *outcomeSink) record(docID string, outcome pdf2png.Outcome) {
	if s == nil {
		return
	}
	if err := s.rec.Record(docID, outcome); err != nil {
		s.logger.Warn("outcome not recorded", "document", docID, "outcome", outcome.String(), "error", err)
	}
}

// recordFailure logs size-exceeded for documents whose pages do not fit.
// Other failures leave no trace in the log.
func (s *outcomeSink) recordFailure(docID string, err error) {
	if errors.Is(err, pdf2png.ErrPageFit) {
		s.record(docID, pdf2png.OutcomeSizeExceeded)
	}
}
