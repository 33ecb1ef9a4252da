package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds composite geometry flags.
type layoutFlags struct {
	portraitWidth  int
	landscapeWidth int
}

// renderFlags holds rasterization flags.
type renderFlags struct {
	dpi        int
	pdftoppm   string
	timeout    string
	crop       bool
	cropInsets string // "left,top,right,bottom"
}

// logFlags holds outcome log flags.
type logFlags struct {
	path     string
	disabled bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	workersSet bool
	layout     layoutFlags
	render     renderFlags
	log        logFlags
}

// driveFlags holds all flags for the drive command.
type driveFlags struct {
	common       commonFlags
	inputFolder  string
	outputFolder string
	credentials  string
	layout       layoutFlags
	render       renderFlags
	log          logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-document details and debug logs")
}

// addLayoutFlags adds composite geometry flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.portraitWidth, "portrait-width", 0, "output width when the first page is portrait (default 640)")
	fs.IntVar(&f.landscapeWidth, "landscape-width", 0, "output width when the first page is landscape (default 1000)")
}

// addRenderFlags adds rasterization flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.IntVar(&f.dpi, "dpi", 0, "rasterization density (36-1200, default 350)")
	fs.StringVar(&f.pdftoppm, "pdftoppm", "", "pdftoppm executable")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "rasterization timeout per document (e.g., 30s, 2m)")
	fs.BoolVar(&f.crop, "crop", false, "remove the scanner border from every page")
	fs.StringVar(&f.cropInsets, "crop-insets", "", "crop insets in pixels: left,top,right,bottom (implies --crop)")
}

// addLogFlags adds outcome log flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.path, "log", "", "outcome log CSV (default <output>/log.csv)")
	fs.BoolVar(&f.disabled, "no-log", false, "do not write the outcome log")
}

// newFlagSet returns a FlagSet that reports errors to the caller only.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := newFlagSet("convert")
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 1, "parallel documents (0 = auto)")

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addRenderFlags(fs, &f.render)
	addLogFlags(fs, &f.log)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")

	return f, fs.Args(), nil
}

// parseDriveFlags parses drive command flags.
func parseDriveFlags(args []string) (*driveFlags, []string, error) {
	fs := newFlagSet("drive")
	f := &driveFlags{}

	fs.StringVar(&f.inputFolder, "input-folder", "", "Drive folder ID to read PDFs from")
	fs.StringVar(&f.outputFolder, "output-folder", "", "Drive folder ID to upload PNGs to")
	fs.StringVar(&f.credentials, "credentials", "", "service account key file (default: application default credentials)")

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addRenderFlags(fs, &f.render)
	addLogFlags(fs, &f.log)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
