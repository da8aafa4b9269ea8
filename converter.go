package hubdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-hubdown/internal/frontmatter"
	"github.com/alnah/go-hubdown/internal/logfields"
	"github.com/alnah/go-hubdown/internal/metrics"
	"github.com/alnah/go-hubdown/internal/pipeline"
)

// Converter converts markdown documents to HTML, memoizing results in the
// Store passed with each conversion. A Converter holds no per-document
// state and is safe for concurrent use.
type Converter struct {
	logger   *slog.Logger
	recorder Recorder
}

// NewConverter creates a Converter. Without options it logs through
// slog.Default() and records no metrics.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert converts markdown with the package default Converter.
func Convert(ctx context.Context, markdown string, opts Options) (Result, error) {
	return defaultConverter.Convert(ctx, markdown, opts)
}

// Convert renders markdown to HTML and returns the result map.
//
// With opts.Cache set, a cached result for the same document and options is
// returned as is, skipping all processing. Cache read failures are logged
// and treated as misses; write failures are returned as ErrCacheStore.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, markdown string, opts Options) (result Result, err error) {
	start := time.Now()
	outcome := metrics.ResultSuccess
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
		if err != nil {
			outcome = metrics.ResultFailed
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				outcome = metrics.ResultCanceled
			}
		}
		c.recorder.ObserveConversionDuration(time.Since(start))
		c.recorder.IncConversionOutcome(outcome)
	}()

	opts = opts.withDefaults()

	var key string
	if opts.Cache != nil {
		key, err = CacheKey(markdown, opts)
		if err != nil {
			return nil, err
		}
		if cached, ok := c.lookup(ctx, opts.Cache, key); ok {
			outcome = metrics.ResultCached
			return cached, nil
		}
	}

	data := Result{}
	content := markdown
	if opts.Frontmatter {
		meta, body, err := frontmatter.Parse(markdown)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFrontmatter, err)
		}
		for k, v := range meta {
			data[k] = v
		}
		content = body
	}

	p, err := pipeline.For(opts.RunBefore, opts.Ignore)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	html, err := p.ProcessObserved(ctx, content, c.observeStage)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	// Rendered content wins over a frontmatter field of the same name.
	data["content"] = html

	if opts.Cache != nil {
		if err := opts.Cache.Put(ctx, key, data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCacheStore, err)
		}
	}
	return data, nil
}

// lookup consults the store and reports a usable hit.
func (c *Converter) lookup(ctx context.Context, store Store, key string) (Result, bool) {
	l := store.Get(ctx, key)
	switch {
	case l.Err() != nil:
		c.recorder.IncCacheLookup(metrics.CacheError)
		c.logger.LogAttrs(ctx, slog.LevelWarn, "cache lookup failed, converting",
			logfields.CacheKey(key), logfields.Error(l.Err()))
		return nil, false
	case l.Hit() && l.Result() != nil:
		c.recorder.IncCacheLookup(metrics.CacheHit)
		c.logger.LogAttrs(ctx, slog.LevelDebug, "cache hit", logfields.CacheKey(key))
		return l.Result(), true
	default:
		c.recorder.IncCacheLookup(metrics.CacheMiss)
		return nil, false
	}
}

func (c *Converter) observeStage(name StageName, d time.Duration, err error) {
	c.recorder.ObserveStageDuration(string(name), d)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	c.recorder.IncStageResult(string(name), result)
}
