package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "hubdown"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	cacheLookups       *prom.CounterVec
	conversionDuration prom.Histogram
	conversionOutcome  *prom.CounterVec
	stageDuration      *prom.HistogramVec
	stageResults       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by outcome",
		}, []string{"outcome"}),
		conversionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Duration of whole conversions, cache hits included",
			Buckets:   prom.DefBuckets,
		}),
		conversionOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by final outcome",
		}, []string{"outcome"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
	}
	reg.MustRegister(pr.cacheLookups, pr.conversionDuration, pr.conversionOutcome, pr.stageDuration, pr.stageResults)
	return pr
}

func (p *PrometheusRecorder) IncCacheLookup(outcome CacheOutcome) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveConversionDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.conversionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConversionOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.conversionOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}
