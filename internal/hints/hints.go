// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and, when one of the searched paths is the user
// config directory, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-hubdown") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownStage returns hints listing the stages that can be ignored.
func ForUnknownStage(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForCacheOpen returns hints for cache database errors.
func ForCacheOpen(path string) string {
	if path == "" {
		return format("set --cache-path when using --cache-driver sqlite")
	}
	return format("check " + path + " is a writable sqlite database or use --cache-driver memory")
}

// ForNoInput returns hints for a missing input argument.
func ForNoInput() string {
	return format("pass a markdown file or directory, or set input.defaultDir in the config")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
