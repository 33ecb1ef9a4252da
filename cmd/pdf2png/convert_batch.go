package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/fileutil"
	"github.com/qpng/go-pdf2png/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput  = errors.New("no input specified")
	ErrWritePNG = errors.New("failed to write PNG file")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Result     *pdf2png.Result
	Err        error
	Duration   time.Duration
}

// progressFunc is called after each document completes.
type progressFunc func(done, total int, r ConversionResult)

// convertBatch processes files concurrently, at most pool.Size() at a time.
// A failed document never stops the others.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, outcomes *outcomeSink, progress progressFunc) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i, f := range files {
		g.Go(func() error {
			results[i] = convertWithPool(ctx, pool, f, outcomes)
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(files), results[i])
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return results
}

func convertWithPool(ctx context.Context, pool Pool, f FileToConvert, outcomes *outcomeSink) ConversionResult {
	if err := ctx.Err(); err != nil {
		return ConversionResult{InputPath: f.InputPath, Err: err}
	}

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return ConversionResult{InputPath: f.InputPath, Err: err}
	}
	defer pool.Release(conv)

	return convertFile(ctx, conv, f, outcomes)
}

// convertFile converts one PDF and writes the PNG. The outcome is recorded
// only once the PNG is on disk.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, outcomes *outcomeSink) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	res, err := conv.Convert(ctx, pdf2png.Input{Path: f.InputPath})
	if err != nil {
		outcomes.recordFailure(fileutil.DocumentID(f.InputPath), err)
		result.Err = withHint(err)
		result.Duration = time.Since(start)
		return result
	}
	result.Result = res

	if err := writePNG(f.OutputPath, res.PNG); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	outcomes.record(res.DocumentID, res.Outcome)
	result.Duration = time.Since(start)
	return result
}

// writePNG writes data to path, creating parent directories.
func writePNG(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- PNGs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}
	return nil
}

// withHint appends an actionable hint for errors users can fix.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, pdf2png.ErrRasterizerMissing):
		hint = hints.ForRasterizer(true)
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, pdf2png.ErrPageFit):
		hint = hints.ForPageFit()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Resized   int
	Failed    int
}

// String formats the batch summary line.
func (s ResultSummary) String() string {
	if s.Resized > 0 {
		return fmt.Sprintf("%d succeeded (%d resized), %d failed", s.Succeeded, s.Resized, s.Failed)
	}
	return fmt.Sprintf("%d succeeded, %d failed", s.Succeeded, s.Failed)
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		default:
			summary.Succeeded++
			if r.Result != nil && r.Result.Outcome == pdf2png.OutcomeResized {
				summary.Resized++
			}
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failures.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose && r.Result != nil {
			fmt.Fprintf(env.Stdout, "%s -> %s (%dx%d, %d pages, %s, %v)\n",
				r.InputPath, r.OutputPath, r.Result.Width, r.Result.Height, r.Result.Pages,
				r.Result.Outcome, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, summary)
	}

	return summary.Failed
}

// batchError summarizes failures. A single failed document keeps its cause
// so the exit code reflects it.
func batchError(results []ConversionResult, failed int) error {
	if failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return errReported{results[0].Err}
	}
	return errReported{fmt.Errorf("%d of %d conversion(s) failed", failed, len(results))}
}

// errReported marks an error already printed to the user; runMain only maps
// it to an exit code.
type errReported struct{ err error }

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

// newProgress returns a progress printer, or nil when progress is hidden.
func newProgress(env *Environment, quiet, verbose bool) progressFunc {
	if quiet || (!env.Interactive && !verbose) {
		return nil
	}
	return func(done, total int, r ConversionResult) {
		status := "ok"
		if r.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(env.Stderr, "[%d/%d] %s %s\n", done, total, filepath.Base(r.InputPath), status)
	}
}
