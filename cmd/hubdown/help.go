package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubdown [flags] <file|dir>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file|dir    Markdown files or directories (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: next to each input)")
	fmt.Fprintln(w, "  -f, --format <s>            Output format: html, json, yaml (default: html)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --frontmatter           Extract YAML frontmatter into the result")
	fmt.Fprintln(w, "      --ignore <names>        Skip built-in stages: emoji, slug, autolinkHeadings, highlight, raw")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache:")
	fmt.Fprintln(w, "      --cache-driver <s>      Result cache: none, memory, sqlite (default: none)")
	fmt.Fprintln(w, "      --cache-path <file>     SQLite database file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics:")
	fmt.Fprintln(w, "      --metrics-textfile <f>  Write Prometheus metrics after the run")
	fmt.Fprintln(w, "      --log-format <s>        Log format: text, json (default: text)")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing and debug logs")
	fmt.Fprintln(w, "      --version               Show version information")
	fmt.Fprintln(w, "  -h, --help                  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  conversion failed")
	fmt.Fprintln(w, "  2  invalid flags or config")
	fmt.Fprintln(w, "  3  file not found or not writable")
}
