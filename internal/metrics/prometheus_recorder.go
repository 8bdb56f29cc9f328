package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "htmlindexer"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	indexOutcomes *prom.CounterVec
	entries       *prom.CounterVec
	runDuration   prom.Histogram
	runOutcomes   *prom.CounterVec
	lastRun       prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		indexOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "index_outcomes_total",
			Help:      "Per-directory index outcomes",
		}, []string{"outcome"}),
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "walk_entries_total",
			Help:      "Entries seen by the directory walk by kind",
		}, []string{"kind"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Runs by final status",
		}, []string{"outcome"}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.indexOutcomes, pr.entries, pr.runDuration, pr.runOutcomes, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) IncIndexOutcome(outcome OutcomeLabel) {
	if p == nil || p.indexOutcomes == nil {
		return
	}
	p.indexOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddEntries(kind EntryLabel, n int) {
	if p == nil || p.entries == nil || n <= 0 {
		return
	}
	p.entries.WithLabelValues(string(kind)).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(outcome).Inc()
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, replacing the file atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
