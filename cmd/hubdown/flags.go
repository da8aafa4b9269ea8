package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling config and verbosity.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// cacheFlags holds result cache flags.
type cacheFlags struct {
	driver string
	path   string
}

// convertFlags holds all command-line flags.
type convertFlags struct {
	common          commonFlags
	cache           cacheFlags
	output          string
	workers         int
	format          string
	frontmatter     bool
	ignore          []string
	metricsTextfile string
	logFormat       string
	version         bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addCacheFlags adds cache flags to a FlagSet.
func addCacheFlags(fs *flag.FlagSet, f *cacheFlags) {
	fs.StringVar(&f.driver, "cache-driver", "", "result cache: none, memory, sqlite")
	fs.StringVar(&f.path, "cache-path", "", "sqlite cache database file")
}

// parseFlags parses command-line flags (without the program name)
// and returns the positional inputs.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("hubdown", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: html, json, yaml")

	// Conversion flags
	fs.BoolVar(&f.frontmatter, "frontmatter", false, "extract YAML frontmatter into the result")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "built-in stages to skip (comma-separated)")

	// Diagnostics
	fs.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVar(&f.version, "version", false, "show version information")

	addCommonFlags(fs, &f.common)
	addCacheFlags(fs, &f.cache)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
