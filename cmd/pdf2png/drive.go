package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	pdf2png "github.com/qpng/go-pdf2png"
	"github.com/qpng/go-pdf2png/internal/drive"
	"github.com/qpng/go-pdf2png/internal/fileutil"
	"github.com/qpng/go-pdf2png/internal/hints"
)

// ErrNoDriveFolder is returned when a Drive folder ID is missing.
var ErrNoDriveFolder = errors.New("drive folder ID not set")

// driveService is the subset of *drive.Client used by the drive command.
type driveService interface {
	ListPDFs(ctx context.Context, folderID string) ([]drive.File, error)
	Download(ctx context.Context, fileID string, w io.Writer) error
	UploadPNG(ctx context.Context, name, parentID string, r io.Reader) (string, error)
}

// Compile-time interface implementation check.
var _ driveService = (*drive.Client)(nil)

// driveJob describes one sync run.
type driveJob struct {
	inputFolder  string
	outputFolder string
	workDir      string
	outcomes     *outcomeSink
}

// runDriveCmd converts every PDF in the input folder and uploads the PNGs
// to the output folder.
func runDriveCmd(ctx context.Context, args []string, env *Environment) error {
	flags, _, err := parseDriveFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDriveUsage(env.Stdout)
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
	if flags.inputFolder != "" {
		cfg.Drive.InputFolderID = flags.inputFolder
	}
	if flags.outputFolder != "" {
		cfg.Drive.OutputFolderID = flags.outputFolder
	}
	if flags.credentials != "" {
		cfg.Drive.Credentials = flags.credentials
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	env.Config = cfg

	if cfg.Drive.InputFolderID == "" {
		return fmt.Errorf("%w: use --input-folder or INPUT_FOLDER_ID", ErrNoDriveFolder)
	}
	if cfg.Drive.OutputFolderID == "" {
		return fmt.Errorf("%w: use --output-folder or OUTPUT_FOLDER_ID", ErrNoDriveFolder)
	}

	timeout, err := resolveTimeoutWithEnv(flags.render.timeout, envCfg.Timeout, cfg.Render.Timeout)
	if err != nil {
		return err
	}

	outcomes, err := openOutcomeLog(resolveLogPath(cfg, cfg.Output.DefaultDir, flags.log.disabled), env.Now)
	if err != nil {
		return err
	}
	if outcomes != nil {
		defer func() { _ = outcomes.Close() }()
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	conv, err := pdf2png.NewConverter(buildOptions(cfg, timeout, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	var client *drive.Client
	if cfg.Drive.Credentials != "" {
		client, err = drive.NewWithCredentialsFile(ctx, cfg.Drive.Credentials)
	} else {
		client, err = drive.New(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForDriveCredentials())
	}

	workDir, cleanup, err := fileutil.MakeTempDir("drive")
	if err != nil {
		return err
	}
	defer cleanup()

	job := driveJob{
		inputFolder:  cfg.Drive.InputFolderID,
		outputFolder: cfg.Drive.OutputFolderID,
		workDir:      workDir,
		outcomes:     newOutcomeSink(outcomes, logger),
	}
	return runDrive(ctx, client, conv, job, flags.common, env)
}

// runDrive syncs the folders sequentially. A failed document is reported
// and skipped.
func runDrive(ctx context.Context, svc driveService, conv CLIConverter, job driveJob, common commonFlags, env *Environment) error {
	files, err := svc.ListPDFs(ctx, job.inputFolder)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForDriveCredentials())
	}
	if len(files) == 0 {
		if !common.quiet {
			fmt.Fprintf(env.Stdout, "No PDF files in folder %s\n", job.inputFolder)
		}
		return nil
	}

	progress := newProgress(env, common.quiet, common.verbose)
	results := make([]ConversionResult, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			results[i] = ConversionResult{InputPath: f.Name, Err: err}
		} else {
			results[i] = syncFile(ctx, svc, conv, job, f)
		}
		if progress != nil {
			progress(i+1, len(files), results[i])
		}
	}

	failed := printResultsWithWriter(results, common.quiet, common.verbose, env)
	return batchError(results, failed)
}

// syncFile downloads one PDF, converts it and uploads <base>.png. The
// outcome is recorded only after a successful upload.
func syncFile(ctx context.Context, svc driveService, conv CLIConverter, job driveJob, f drive.File) ConversionResult {
	start := time.Now()
	docID := fileutil.DocumentID(f.Name)
	pngName := docID + ".png"
	result := ConversionResult{InputPath: f.Name, OutputPath: pngName}

	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	localPath := filepath.Join(job.workDir, fileutil.SafeName(f.ID)+".pdf")
	defer func() { _ = os.Remove(localPath) }()
	if err := download(ctx, svc, f.ID, localPath); err != nil {
		return fail(err)
	}

	res, err := conv.Convert(ctx, pdf2png.Input{DocumentID: docID, Path: localPath})
	if err != nil {
		job.outcomes.recordFailure(docID, err)
		return fail(withHint(err))
	}
	result.Result = res

	id, err := svc.UploadPNG(ctx, pngName, job.outputFolder, bytes.NewReader(res.PNG))
	if err != nil {
		return fail(err)
	}
	job.outcomes.record(res.DocumentID, res.Outcome)
	result.OutputPath = pngName + " (" + id + ")"
	result.Duration = time.Since(start)
	return result
}

func download(ctx context.Context, svc driveService, fileID, path string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304 -- path is inside our temp dir
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return svc.Download(ctx, fileID, f)
}
