package merge

import (
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/metrics"
	"github.com/oneconcern/datagit/pkg/model"
)

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets a logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.l = l
		}
	}
}

// WithMetrics records merge outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// Request carries the identity and message of a merge commit
type Request struct {
	Author    model.Contributor
	Committer model.Contributor

	// Message overrides the generated message of a merge commit
	Message string

	// Timestamp of a merge commit. Defaults to the time set by the store.
	Timestamp time.Time
}

func (r Request) committer() model.Contributor {
	if r.Committer.IsZero() {
		return r.Author
	}
	return r.Committer
}
