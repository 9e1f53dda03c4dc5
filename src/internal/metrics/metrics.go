// Package metrics exposes the outcome of merge runs as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mergehosts/mergehosts/src/internal/hosts"
)

const Namespace = "mergehosts"

// MergeMetrics records per-source counters of the last merge and run totals.
type MergeMetrics struct {
	written     *prometheus.GaugeVec
	duplicates  *prometheus.GaugeVec
	skipped     *prometheus.GaugeVec
	hosts       prometheus.Gauge
	runs        *prometheus.CounterVec
	lastSuccess prometheus.Gauge
}

func NewMergeMetrics(r prometheus.Registerer, namespace string) *MergeMetrics {
	if r == nil {
		r = prometheus.NewRegistry() // This registry will be discarded.
	}
	f := promauto.With(r)
	l := []string{"source"}

	return &MergeMetrics{
		written: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:      "source_entries",
			Namespace: namespace,
			Help:      "Number of entries written from each source by the last merge",
		}, l),
		duplicates: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:      "source_duplicates",
			Namespace: namespace,
			Help:      "Number of duplicate hostnames dropped from each source by the last merge",
		}, l),
		skipped: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:      "source_skipped",
			Namespace: namespace,
			Help:      "Number of hostnames skipped from each source by the last merge",
		}, l),
		hosts: f.NewGauge(prometheus.GaugeOpts{
			Name:      "hosts",
			Namespace: namespace,
			Help:      "Number of distinct hostnames in the last merged document",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name:      "merges_total",
			Namespace: namespace,
			Help:      "Number of merge runs",
		}, []string{"result"}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name:      "last_success_timestamp_seconds",
			Namespace: namespace,
			Help:      "Unix time of the last successful merge",
		}),
	}
}

// Observe records a successful merge.
func (m *MergeMetrics) Observe(res *hosts.Result) {
	for _, s := range res.Sources {
		m.written.WithLabelValues(s.Category).Set(float64(s.Written))
		m.duplicates.WithLabelValues(s.Category).Set(float64(s.Duplicates))
		m.skipped.WithLabelValues(s.Category).Set(float64(s.Skipped))
	}
	m.hosts.Set(float64(res.Total))
	m.runs.WithLabelValues("success").Inc()
	m.lastSuccess.SetToCurrentTime()
}

// Failed records a merge that was aborted.
func (m *MergeMetrics) Failed() {
	m.runs.WithLabelValues("error").Inc()
}
