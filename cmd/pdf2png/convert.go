package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/config"
)

// ErrUsage wraps command-line parsing errors.
var ErrUsage = errors.New("invalid usage")

// runConvertCmd parses convert flags, builds the converter pool and runs
// the batch.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeLayoutFlags(&flags.layout, cfg)
	if err := mergeRenderFlags(&flags.render, cfg); err != nil {
		return err
	}
	mergeLogFlags(&flags.log, cfg)
	if flags.workersSet {
		cfg.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}
	env.Config = cfg

	timeout, err := resolveTimeoutWithEnv(flags.render.timeout, envCfg.Timeout, cfg.Render.Timeout)
	if err != nil {
		return err
	}

	inputPaths, err := resolveInputPaths(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPaths, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no PDF files found in %v", ErrNoInput, inputPaths)
	}

	outcomes, err := openOutcomeLog(resolveLogPath(cfg, outputDir, flags.log.disabled), env.Now)
	if err != nil {
		return err
	}
	if outcomes != nil {
		defer func() { _ = outcomes.Close() }()
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	size := poolSize(flags.workersSet, cfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}

	pool, err := pdf2png.NewConverterPool(size, buildOptions(cfg, timeout, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	return runConvert(ctx, files, &poolAdapter{pool: pool}, newOutcomeSink(outcomes, logger), flags.common, env)
}

// runConvert converts files and prints the results.
func runConvert(ctx context.Context, files []FileToConvert, pool Pool, outcomes *outcomeSink, common commonFlags, env *Environment) error {
	results := convertBatch(ctx, pool, files, outcomes, newProgress(env, common.quiet, common.verbose))
	failed := printResultsWithWriter(results, common.quiet, common.verbose, env)
	return batchError(results, failed)
}

// poolSize resolves the worker count. Documents are converted one at a
// time unless workers were requested; 0 picks a size from GOMAXPROCS.
func poolSize(explicit bool, workers int) int {
	if !explicit && workers == 0 {
		return 1
	}
	return pdf2png.ResolvePoolSize(workers)
}

// resolveInputPaths returns the positional inputs or the configured default.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir returns the output flag or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
