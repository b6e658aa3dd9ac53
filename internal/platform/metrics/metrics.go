// Package metrics reports runtime metrics using Prometheus primitives.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts excuse generation requests and normalization outcomes.
type Recorder struct {
	requests  *prometheus.CounterVec
	durations prometheus.Histogram
	normalize *prometheus.CounterVec
}

// NewRecorder registers the service collectors on the given registry.
func NewRecorder(registry *prometheus.Registry) (*Recorder, error) {
	if registry == nil {
		return nil, fmt.Errorf("prometheus registry is nil")
	}

	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "excuse_generator_requests_total",
			Help: "Total number of excuse generation requests by HTTP status",
		}, []string{"status"}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "excuse_generator_request_duration_seconds",
			Help:    "Excuse generation request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		normalize: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "excuse_generator_normalize_total",
			Help: "Total number of normalized LLM responses by cascade strategy",
		}, []string{"strategy"}),
	}

	for _, collector := range []prometheus.Collector{r.requests, r.durations, r.normalize} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// ObserveRequest records one generation request with its response status.
func (r *Recorder) ObserveRequest(status string, duration time.Duration) {
	r.requests.WithLabelValues(status).Inc()
	r.durations.Observe(duration.Seconds())
}

// ObserveNormalize records which cascade strategy settled a model response.
// Implements generation.Observer.
func (r *Recorder) ObserveNormalize(strategy string) {
	r.normalize.WithLabelValues(strategy).Inc()
}

// Handler exposes the registry in Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
