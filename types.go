package hubdown

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-hubdown/internal/metrics"
	"github.com/alnah/go-hubdown/internal/pipeline"
)

// Pipeline types, re-exported for callers building their own stages.
type (
	Stage           = pipeline.Stage
	StageName       = pipeline.StageName
	Document        = pipeline.Document
	Transformer     = pipeline.Transformer
	TransformerFunc = pipeline.TransformerFunc
	Recorder        = metrics.Recorder
)

// Built-in stage names, in execution order.
const (
	StageMarkdown         = pipeline.StageMarkdown
	StageBefore           = pipeline.StageBefore
	StageEmoji            = pipeline.StageEmoji
	StageRemark2Rehype    = pipeline.StageRemark2Rehype
	StageSlug             = pipeline.StageSlug
	StageAutolinkHeadings = pipeline.StageAutolinkHeadings
	StageHighlight        = pipeline.StageHighlight
	StageRaw              = pipeline.StageRaw
	StageHTML             = pipeline.StageHTML
)

// Options configures a single conversion.
type Options struct {
	// RunBefore stages run right after markdown parsing, in order, in place
	// of the "before" injection point.
	RunBefore []Stage

	// Frontmatter splits a leading YAML block off the document and merges
	// its fields into the result.
	Frontmatter bool

	// Ignore names built-in stages to leave out of the pipeline.
	Ignore []StageName

	// Cache memoizes results. It never influences the cache key.
	Cache Store

	// Extra holds unrecognized options. They are part of the cache key and
	// otherwise ignored. A "cache" entry is never hashed.
	Extra map[string]any
}

// withDefaults returns a copy of o with nil slices replaced by empty ones.
func (o Options) withDefaults() Options {
	if o.RunBefore == nil {
		o.RunBefore = []Stage{}
	}
	if o.Ignore == nil {
		o.Ignore = []StageName{}
	}
	return o
}

// Result is a conversion result: frontmatter fields, when enabled, plus
// "content" holding the rendered HTML.
type Result map[string]any

// Content returns the rendered HTML.
func (r Result) Content() string {
	s, _ := r["content"].(string)
	return s
}

// clone returns a deep copy of r. Nested maps and slices are copied too.
func (r Result) clone() Result {
	if r == nil {
		return nil
	}
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Result:
		return t.clone()
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		if t == nil {
			return t
		}
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewPrometheusRecorder returns a Recorder backed by Prometheus metrics
// registered on reg. A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prometheus.Registry) Recorder {
	return metrics.NewPrometheusRecorder(reg)
}
