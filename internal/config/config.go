package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-hubdown/internal/fileutil"
	"github.com/alnah/go-hubdown/internal/pipeline"
	"github.com/alnah/go-hubdown/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrUnknownStage    = errors.New("unknown stage")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxStageNameLength = 64
)

// Maximum number of conversion workers.
const MaxWorkers = 64

// Output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Cache drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	Workers int           `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // "html", "json", "yaml" (default: "html")
}

// ConvertConfig defines per-document conversion options.
type ConvertConfig struct {
	Frontmatter bool     `yaml:"frontmatter"`
	Ignore      []string `yaml:"ignore"` // Built-in stage names to skip
}

// CacheConfig defines result caching options.
type CacheConfig struct {
	Driver string `yaml:"driver"` // "none", "memory", "sqlite" (default: "none")
	Path   string `yaml:"path"`   // Database file, required for sqlite
}

// MetricsConfig defines metrics export options.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // Prometheus textfile path (empty = disabled)
}

// LogConfig defines diagnostics output.
type LogConfig struct {
	Format string `yaml:"format"` // "text", "json" (default: "text")
}

// Validate checks enumerated values and field lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateOneOf("output.format", c.Output.Format, FormatHTML, FormatJSON, FormatYAML); err != nil {
		return err
	}

	for i, name := range c.Convert.Ignore {
		field := fmt.Sprintf("convert.ignore[%d]", i)
		if err := validateFieldLength(field, name, MaxStageNameLength); err != nil {
			return err
		}
		if !pipeline.IsBuiltin(pipeline.StageName(name)) {
			return fmt.Errorf("%w: %s: %w %q", ErrInvalidValue, field, ErrUnknownStage, name)
		}
	}

	if err := validateOneOf("cache.driver", c.Cache.Driver, DriverNone, DriverMemory, DriverSQLite); err != nil {
		return err
	}
	if err := validateFieldLength("cache.path", c.Cache.Path, MaxPathLength); err != nil {
		return err
	}
	if c.Cache.Driver == DriverSQLite && c.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path: required when cache.driver is sqlite", ErrInvalidValue)
	}

	if err := validateFieldLength("metrics.textfile", c.Metrics.Textfile, MaxPathLength); err != nil {
		return err
	}
	if err := validateOneOf("log.format", c.Log.Format, LogText, LogJSON); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf accepts an empty value (meaning default) or one of allowed.
func validateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration converting to HTML without caching.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatHTML},
		Cache:  CacheConfig{Driver: DriverNone},
		Log:    LogConfig{Format: LogText},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// name.yaml and name.yml in the current directory, then in the go-hubdown
// directory under the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-hubdown", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
