package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2png <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Stitch PDF pages into one tall PNG per document")
	fmt.Fprintln(w, "  drive      Convert the PDFs of a Google Drive folder")
	fmt.Fprintln(w, "  doctor     Check that pdftoppm and the system are ready")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdf2png help <command>' for details on a specific command.")
}

// printLayoutUsage prints the flags shared by convert and drive.
func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --portrait-width <n>  Width when the first page is portrait (default 640)")
	fmt.Fprintln(w, "      --landscape-width <n> Width when the first page is landscape (default 1000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --dpi <n>             Rasterization density, 36-1200 (default 350)")
	fmt.Fprintln(w, "      --pdftoppm <path>     pdftoppm executable")
	fmt.Fprintln(w, "  -t, --timeout <d>         Rasterization timeout per document (default 5m)")
	fmt.Fprintln(w, "      --crop                Remove the scanner border (250px sides, 350px top/bottom)")
	fmt.Fprintln(w, "      --crop-insets <l,t,r,b>  Custom crop insets in pixels")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outcome log:")
	fmt.Fprintln(w, "      --log <path>          CSV outcome log (default <output>/log.csv)")
	fmt.Fprintln(w, "      --no-log              Do not write the outcome log")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-document details and debug logs")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2png convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stitch the pages of each PDF into one tall PNG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    PDF file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel documents (default 1, 0 = auto)")
	fmt.Fprintln(w)
	printLayoutUsage(w)
}

// printDriveUsage prints usage for the drive command.
func printDriveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2png drive [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every PDF in a Google Drive folder and upload <name>.png")
	fmt.Fprintln(w, "to another folder. Documents are processed one at a time.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Drive:")
	fmt.Fprintln(w, "      --input-folder <id>   Folder to read PDFs from (INPUT_FOLDER_ID)")
	fmt.Fprintln(w, "      --output-folder <id>  Folder to upload PNGs to (OUTPUT_FOLDER_ID)")
	fmt.Fprintln(w, "      --credentials <path>  Service account key (default: GOOGLE_APPLICATION_CREDENTIALS)")
	fmt.Fprintln(w)
	printLayoutUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "drive":
		printDriveUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: pdf2png doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pdftoppm is installed and the temp directory is writable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdf2png version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdf2png help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
