// Package metrics exposes Prometheus collectors for feed ingestion.
//
// Every method is safe on a nil *Metrics, so adapters can record
// unconditionally and callers opt in by passing a collector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "feedcorpus"

// Fetch results used as label values.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultRateLimited = "rate_limited"
	ResultOpenCircuit = "circuit_open"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	FeedFetches   *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	ItemsParsed   prometheus.Counter
	Pictures      *prometheus.CounterVec
	BreakerState  *prometheus.GaugeVec
}

// New creates collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FeedFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "feed_fetches_total",
				Help:      "Feed fetch attempts by result.",
			},
			[]string{"result"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "feed_fetch_duration_seconds",
				Help:      "Time spent fetching and parsing a feed.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ItemsParsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "feed_items_parsed_total",
				Help:      "Feed entries parsed into article fields.",
			},
		),
		Pictures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "pictures_total",
				Help:      "Picture downloads by final status.",
			},
			[]string{"status"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "feed_circuit_state",
				Help:      "Circuit breaker state per host (0 closed, 1 half-open, 2 open).",
			},
			[]string{"host"},
		),
	}

	m.registry.MustRegister(m.FeedFetches, m.FetchDuration, m.ItemsParsed, m.Pictures, m.BreakerState)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFetch records one fetch attempt.
func (m *Metrics) ObserveFetch(result string, elapsed time.Duration, items int) {
	if m == nil {
		return
	}
	m.FeedFetches.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
	m.ItemsParsed.Add(float64(items))
}

// ObservePicture records the final status of one picture download.
func (m *Metrics) ObservePicture(status string) {
	if m == nil {
		return
	}
	m.Pictures.WithLabelValues(status).Inc()
}

// SetBreakerState records the circuit state of host.
func (m *Metrics) SetBreakerState(host string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(host).Set(float64(state))
}
