// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/flarespire359/kujata-sub000/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Summary counts the outcome of processing a set of files.
type Summary struct {
	Files    int // number of processed files
	Failed   int // number of files that could not be extracted
	Routines int // number of routines that could not be fully decoded
}

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, input, output string,
	extractOptions options.Extract) (*pipeline.Result, error) {

	writer, err := createWriter(output)
	if err != nil {
		return nil, fmt.Errorf("creating writer: %w", err)
	}

	result, err := pipeline.New(logger).Execute(ctx, input, extractOptions, writer)
	if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
		_ = closer.Close()
		if err != nil {
			// no partial output files of failed extractions
			_ = os.Remove(output)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", input, err)
	}
	return result, nil
}

// ProcessFiles processes all input files of the options. Multiple files
// are processed in parallel and written to generated output file names.
// A failing file is logged and does not stop the processing of the others.
func ProcessFiles(ctx context.Context, logger *log.Logger, opts options.Program,
	extractOptions options.Extract) (Summary, error) {

	files, err := GetFilesToProcess(&opts)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no files found matching '%s'", opts.Batch)
	}

	if opts.Batch == "" {
		summary := Summary{Files: 1}
		result, err := ProcessFile(ctx, logger, opts.Input, opts.Output, extractOptions)
		if err != nil {
			return summary, err
		}
		summary.Routines = result.Failures
		return summary, nil
	}

	return processBatch(ctx, logger, opts, extractOptions, files)
}

func processBatch(ctx context.Context, logger *log.Logger, opts options.Program,
	extractOptions options.Extract, files []string) (Summary, error) {

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet {
		bar = progressbar.Default(int64(len(files)))
		bar.Describe("extract")
	}

	var (
		mu      sync.Mutex
		summary = Summary{Files: len(files)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		g.Go(func() error {
			output := GenerateOutputFilename(file, extractOptions.Format)
			result, err := ProcessFile(ctx, logger, file, output, extractOptions)

			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				_ = bar.Add(1)
			}

			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				summary.Failed++
				logger.Error("Extracting file failed", log.String("file", file), log.Err(err))
				return nil
			}
			summary.Routines += result.Failures
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("processing batch: %w", err)
	}
	return summary, nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
// and output format.
func GenerateOutputFilename(inputFile, format string) string {
	ext := filepath.Ext(inputFile)
	outputExt := "." + format
	if format == options.FormatText {
		outputExt = ".txt"
	}
	return inputFile[:len(inputFile)-len(ext)] + outputExt
}

func createWriter(output string) (io.Writer, error) {
	if output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("kujata", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintSummary logs the outcome of a processing run.
func PrintSummary(logger *log.Logger, summary Summary) {
	if summary.Failed == 0 && summary.Routines == 0 {
		logger.Debug("Extraction finished", log.Int("files", summary.Files))
		return
	}

	logger.Warn("Extraction finished with errors",
		log.Int("files", summary.Files),
		log.Int("failedFiles", summary.Failed),
		log.Int("failedRoutines", summary.Routines))
}
