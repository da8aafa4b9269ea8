package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	hubdown "github.com/alnah/go-hubdown"
	"github.com/alnah/go-hubdown/internal/fileutil"
	"github.com/alnah/go-hubdown/internal/logfields"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrWriteOutput     = errors.New("failed to write output file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, markdown string, opts hubdown.Options) (hubdown.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*hubdown.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	options hubdown.Options
	format  string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// resolveWorkers returns the number of concurrent conversions for n files.
// 0 means one per available CPU.
func resolveWorkers(workers, n int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// convertBatch converts files with at most workers conversions in flight.
// Results keep the order of files. A failing file does not stop the others.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams, workers int, logger *slog.Logger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(resolveWorkers(workers, len(files)))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = convertFile(ctx, conv, f, params)
			logConversion(logger, results[i])
			return nil
		})
	}

	_ = g.Wait() // goroutines record failures in results
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	converted, err := conv.Convert(ctx, string(content), params.options)
	if err != nil {
		return fail(err)
	}

	data, err := encodeResult(converted, params.format)
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, data, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

func logConversion(logger *slog.Logger, r ConversionResult) {
	ms := float64(r.Duration.Microseconds()) / 1000
	if r.Err != nil {
		logger.Debug("conversion failed", logfields.File(r.InputPath), logfields.DurationMS(ms), logfields.Error(r.Err))
		return
	}
	logger.Debug("converted", logfields.File(r.InputPath), logfields.Output(r.OutputPath), logfields.DurationMS(ms))
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, nil))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
