package metrics

import "time"

// CacheOutcome enumerates cache lookup results.
type CacheOutcome string

const (
	CacheHit   CacheOutcome = "hit"
	CacheMiss  CacheOutcome = "miss"
	CacheError CacheOutcome = "error"
)

// ResultLabel enumerates conversion and stage result categories.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultCached   ResultLabel = "cached"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for conversions. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncCacheLookup(outcome CacheOutcome)
	ObserveConversionDuration(d time.Duration)
	IncConversionOutcome(outcome ResultLabel)
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncCacheLookup(CacheOutcome)                {}
func (NoopRecorder) ObserveConversionDuration(time.Duration)    {}
func (NoopRecorder) IncConversionOutcome(ResultLabel)           {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
