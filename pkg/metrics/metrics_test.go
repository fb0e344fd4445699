package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.Commit("commit")
	m.Commit("commit")
	m.Commit("fork")
	m.Merge("AutoMerged", 0, time.Millisecond)
	m.Merge("ConflictDetected", 3, time.Millisecond)
	m.Retry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commits.WithLabelValues("commit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commits.WithLabelValues("fork")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Merges.WithLabelValues("ConflictDetected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries))
	assert.Equal(t, 1, testutil.CollectAndCount(m.MergeDuration))

	_, err = New(reg)
	assert.Error(t, err, "collectors cannot be registered twice")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Commit("commit")
		m.Merge("SameCommit", 0, 0)
		m.Retry()
	})
}
