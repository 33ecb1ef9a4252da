package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/qpng/go-pdf2png/internal/hints"
	"github.com/qpng/go-pdf2png/internal/raster"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Rasterizer rasterizerInfo `json:"rasterizer"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// rasterizerInfo holds pdftoppm detection results.
type rasterizerInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	PdftoppmBin   string `json:"pdf2png_pdftoppm"`
	Credentials   string `json:"google_application_credentials"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:          runtime.GOOS,
			Arch:        runtime.GOARCH,
			PdftoppmBin: os.Getenv("PDF2PNG_PDFTOPPM"),
			Credentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}

	checkRasterizer(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRasterizer locates pdftoppm and reads its version.
func checkRasterizer(result *doctorResult) {
	bin := result.Env.PdftoppmBin
	if bin == "" {
		bin = raster.DefaultPdftoppm
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install poppler or set PDF2PNG_PDFTOPPM", bin))
		return
	}

	result.Rasterizer.Found = true
	result.Rasterizer.Path = path

	// pdftoppm prints its version on stderr.
	out, err := exec.Command(path, "-v").CombinedOutput() // #nosec G204 -- path from LookPath
	if v := firstLine(string(out)); v != "" {
		result.Rasterizer.Version = v
	} else if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get pdftoppm version: %v", err))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Credentials != "" {
		if _, err := os.Stat(result.Env.Credentials); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("GOOGLE_APPLICATION_CREDENTIALS points to a missing file: %s", result.Env.Credentials))
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("PDF2PNG_CONTAINER") == "1" {
		return true, "PDF2PNG_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "pdf2png-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdf2png doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rasterizer (pdftoppm)")
	if r.Rasterizer.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Rasterizer.Path)
		if r.Rasterizer.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Rasterizer.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.Credentials != "" {
		fmt.Fprintf(w, "  [OK] Drive credentials: %s\n", r.Env.Credentials)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
