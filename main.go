// Package main implements the main entry point for the game data extractor
package main

import (
	"context"
	"errors"
	"os"

	"github.com/flarespire359/kujata-sub000/internal/cli"
	"github.com/flarespire359/kujata-sub000/internal/config"
	"github.com/flarespire359/kujata-sub000/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, extractOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	summary, err := fileprocessor.ProcessFiles(ctx, logger, opts, extractOptions)
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Extraction failed", log.Err(err))
		os.Exit(1)
	}
	fileprocessor.PrintSummary(logger, summary)
}
