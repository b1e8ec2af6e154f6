package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instrumentation for amfserver, broken down by
// amf.ErrorKind so an operator can tell a malformed upstream AMF file apart
// from a missing LUT or an unsupported reference config at a glance.
type metrics struct {
	compilesTotal   *prometheus.CounterVec
	compileDuration prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		compilesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amf",
			Subsystem: "server",
			Name:      "compiles_total",
			Help:      "Total number of AMF compile attempts by outcome.",
		}, []string{"outcome"}),
		compileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "amf",
			Subsystem: "server",
			Name:      "compile_duration_seconds",
			Help:      "Time to compile a single AMF file, regardless of outcome.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
