// Package metrics exposes Prometheus metrics for language negotiation and
// content discovery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

const namespace = "polyglot"

// Metrics owns a private registry so tests and multiple instances never
// collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	negotiations *prometheus.CounterVec
	available    prometheus.Gauge
	fallbacks    *prometheus.CounterVec
}

// New registers the service metrics together with Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "negotiations_total",
			Help:      "Language negotiations by deciding source and chosen language.",
		}, []string{"source", "language"}),
		available: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_languages",
			Help:      "Number of languages content is currently available in.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_fallbacks_total",
			Help:      "Content scans that fell back to the default language.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.negotiations,
		m.available,
		m.fallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveNegotiation records one negotiation outcome.
// It matches the signature expected by i18n.WithObserver.
func (m *Metrics) ObserveNegotiation(r i18n.Result) {
	m.negotiations.WithLabelValues(string(r.Source), r.Language).Inc()
}

// ObserveScan records a completed content scan.
// It matches the signature expected by i18n.WithScanObserver.
func (m *Metrics) ObserveScan(r i18n.ScanResult) {
	m.available.Set(float64(len(r.Languages)))
	if !r.Fallback {
		return
	}
	reason := "empty"
	if r.Err != nil {
		reason = "store_error"
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
