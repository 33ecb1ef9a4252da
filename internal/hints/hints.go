// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/qpng/go-pdf2png/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRasterizer returns hints for a missing or failing pdftoppm.
func ForRasterizer(notFound bool) string {
	var hints []string

	if notFound {
		if IsInContainer() {
			hints = append(hints, "add poppler-utils to the image (apt-get install poppler-utils)")
		} else {
			hints = append(hints, "install poppler (poppler-utils on Debian/Ubuntu, brew install poppler on macOS)")
		}
	}

	if os.Getenv("PDF2PNG_PDFTOPPM") == "" {
		hints = append(hints, "set PDF2PNG_PDFTOPPM or --pdftoppm to point at the executable")
	}

	return formatHints(hints)
}

// ForPageFit returns a hint for documents that overran the provisional canvas.
func ForPageFit() string {
	return format("raise layout.provisionalHeight in the config, or lower --dpi/--portrait-width")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pdf2png/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-pdf2png") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForDriveCredentials returns hints for Drive authentication failures.
func ForDriveCredentials() string {
	var hints []string
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		hints = append(hints, "set GOOGLE_APPLICATION_CREDENTIALS to a service account key file")
	}
	hints = append(hints, "share both folders with the service account email")
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
