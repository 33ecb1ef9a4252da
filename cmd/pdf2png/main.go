package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && isPDF(cmd) {
		// pdf2png report.pdf is shorthand for pdf2png convert report.pdf
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "drive":
		err = runDriveCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pdf2png %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		fmt.Fprintln(env.Stderr, "Run 'pdf2png help' for usage.")
		return ExitUsage
	}

	if err != nil {
		var reported errReported
		if !errors.As(err, &reported) {
			fmt.Fprintln(env.Stderr, err)
		}
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "Run 'pdf2png help %s' for usage.\n", cmd)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case "convert", "drive", "doctor", "version", "help":
		return true
	}
	return false
}

// hasVerboseFlag scans args for -v or --verbose before flags are parsed.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
