// Package logfields holds the canonical slog attribute keys shared by the
// converter and the CLI.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCacheKey   = "cache_key"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyDriver     = "cache_driver"
	KeyOutcome    = "outcome"
	KeyWorkers    = "workers"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func CacheKey(k string) slog.Attr     { return slog.String(KeyCacheKey, k) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Driver(d string) slog.Attr       { return slog.String(KeyDriver, d) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
