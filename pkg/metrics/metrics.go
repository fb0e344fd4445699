// Package metrics exposes prometheus collectors for datagit operations.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "datagit"

// Metrics groups the collectors of a repository
type Metrics struct {
	Commits       *prometheus.CounterVec
	Merges        *prometheus.CounterVec
	Conflicts     prometheus.Counter
	Retries       prometheus.Counter
	MergeDuration prometheus.Histogram
}

// New creates collectors and registers them. A nil registerer leaves them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Number of commits created, by operation",
		}, []string{"op"}),
		Merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Number of merges, by outcome",
		}, []string{"status"}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_conflicts_total",
			Help:      "Number of conflicting paths reported by merges",
		}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_retries_total",
			Help:      "Number of updates retried after a concurrent modification",
		}),
		MergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_duration_seconds",
			Help:      "Time spent merging",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew creates and registers collectors, or panics
func MustNew(reg prometheus.Registerer) *Metrics {
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Commits, m.Merges, m.Conflicts, m.Retries, m.MergeDuration}
}

// Commit counts a commit created by some operation
func (m *Metrics) Commit(op string) {
	if m == nil {
		return
	}
	m.Commits.WithLabelValues(op).Inc()
}

// Merge records the outcome of a merge
func (m *Metrics) Merge(status string, conflicts int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Merges.WithLabelValues(status).Inc()
	m.Conflicts.Add(float64(conflicts))
	m.MergeDuration.Observe(elapsed.Seconds())
}

// Retry counts a retried update
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}
