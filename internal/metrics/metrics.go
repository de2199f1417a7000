// Package metrics exposes Prometheus collectors for external data acquisition.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	externalFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screensaver",
			Subsystem: "external",
			Name:      "fetches_total",
			Help:      "External data fetches by domain and outcome.",
		},
		[]string{"domain", "outcome"},
	)

	externalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "screensaver",
			Subsystem: "external",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of external data fetches including fallbacks.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"domain"},
	)

	compositions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "screensaver",
			Subsystem: "content",
			Name:      "compositions_total",
			Help:      "Total number of composed content maps.",
		},
	)

	locationSource = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "screensaver",
			Subsystem: "location",
			Name:      "source",
			Help:      "1 for the source of the current location record, 0 otherwise.",
		},
		[]string{"source"},
	)
)

func init() {
	Registry.MustRegister(
		externalFetches,
		externalDuration,
		compositions,
		locationSource,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveFetch records one gateway call
func ObserveFetch(domain, outcome string, started time.Time) {
	externalFetches.WithLabelValues(domain, outcome).Inc()
	externalDuration.WithLabelValues(domain).Observe(time.Since(started).Seconds())
}

// ObserveComposition counts a composed content map
func ObserveComposition() {
	compositions.Inc()
}

// SetLocationSource flags the active location source
func SetLocationSource(source string) {
	for _, s := range []string{"ip", "browser", "none"} {
		v := 0.0
		if s == source {
			v = 1
		}
		locationSource.WithLabelValues(s).Set(v)
	}
}
