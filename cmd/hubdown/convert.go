package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	hubdown "github.com/alnah/go-hubdown"
	"github.com/alnah/go-hubdown/internal/config"
	"github.com/alnah/go-hubdown/internal/hints"
	"github.com/alnah/go-hubdown/internal/logfields"
	"github.com/alnah/go-hubdown/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrConversionFailed = errors.New("conversion failed")
	ErrWriteMetrics     = errors.New("failed to write metrics file")
)

// run orchestrates a conversion run.
func run(ctx context.Context, inputs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(inputs) == 0 {
		if cfg.Input.DefaultDir == "" {
			return ErrNoInput
		}
		inputs = []string{cfg.Input.DefaultDir}
	}

	format := strings.ToLower(cfg.Output.Format)
	files, err := discoverAll(inputs, cfg.Output.DefaultDir, format)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	logger := newLogger(env.Stderr, cfg.Log.Format, flags.common.quiet, flags.common.verbose)

	store, closeStore, err := openStore(cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Warn("closing cache", logfields.Driver(cfg.Cache.Driver), logfields.Error(cerr))
		}
	}()

	registry := prometheus.NewRegistry()
	converterOpts := []hubdown.Option{hubdown.WithLogger(logger)}
	if cfg.Metrics.Textfile != "" {
		converterOpts = append(converterOpts, hubdown.WithRecorder(hubdown.NewPrometheusRecorder(registry)))
	}
	converter := hubdown.NewConverter(converterOpts...)

	params := &conversionParams{
		options: hubdown.Options{
			Frontmatter: cfg.Convert.Frontmatter,
			Ignore:      stageNames(cfg.Convert.Ignore),
			Cache:       store,
		},
		format: format,
	}

	workers := resolveWorkers(cfg.Workers, len(files))
	logger.Debug("starting conversion",
		logfields.Workers(workers),
		logfields.Driver(strings.ToLower(cfg.Cache.Driver)),
		slog.Int("files", len(files)))

	results := convertBatch(ctx, converter, files, params, workers, logger)
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteMetrics, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
	}
	return nil
}

// loadConfig returns the config named by --config, or a copy of the
// environment's base config.
func loadConfig(flags *convertFlags, env *Environment) (*config.Config, error) {
	if flags.common.config != "" {
		cfg, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	if env.Config == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *env.Config
	cfg.Convert.Ignore = append([]string(nil), env.Config.Convert.Ignore...)
	return &cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.frontmatter {
		cfg.Convert.Frontmatter = true
	}
	if len(flags.ignore) > 0 {
		cfg.Convert.Ignore = trimAll(flags.ignore)
	}
	if flags.cache.driver != "" {
		cfg.Cache.Driver = flags.cache.driver
	}
	if flags.cache.path != "" {
		cfg.Cache.Path = flags.cache.path
	}
	if flags.metricsTextfile != "" {
		cfg.Metrics.Textfile = flags.metricsTextfile
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// trimAll trims whitespace from every value and drops empty ones.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func stageNames(names []string) []hubdown.StageName {
	if len(names) == 0 {
		return nil
	}
	out := make([]hubdown.StageName, len(names))
	for i, n := range names {
		out[i] = hubdown.StageName(n)
	}
	return out
}

// hintFor returns an actionable hint for err, or "". flags may be nil for
// per-file errors.
func hintFor(err error, flags *convertFlags) string {
	var configName, cachePath string
	if flags != nil {
		configName, cachePath = flags.common.config, flags.cache.path
	}

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, config.ErrUnknownStage):
		builtins := pipeline.BuiltinStages()
		names := make([]string, len(builtins))
		for i, s := range builtins {
			names[i] = string(s)
		}
		return hints.ForUnknownStage(names)
	case errors.Is(err, ErrOpenCache):
		return hints.ForCacheOpen(cachePath)
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
