package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/metrics"
)

// cliMetrics collects the metrics of a single command, flushed to a textfile when the command is done
type cliMetrics struct {
	registry *prometheus.Registry
	m        *metrics.Metrics
}

func newCLIMetrics() *cliMetrics {
	if datagitFlags.root.metricsFile == "" {
		return nil
	}
	registry := prometheus.NewRegistry()
	return &cliMetrics{
		registry: registry,
		m:        metrics.MustNew(registry),
	}
}

func (c *cliMetrics) metrics() *metrics.Metrics {
	if c == nil {
		return nil
	}
	return c.m
}

// flush writes metrics in the prometheus text format, e.g. for the node exporter textfile collector
func (c *cliMetrics) flush() {
	if c == nil {
		return
	}
	if err := prometheus.WriteToTextfile(datagitFlags.root.metricsFile, c.registry); err != nil {
		logger.Warn("writing metrics", zap.String("file", datagitFlags.root.metricsFile), zap.Error(err))
	}
}
