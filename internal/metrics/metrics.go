package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weathertracker/internal/weather"
)

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	providerFetchTotal  *prometheus.CounterVec
	suggestionsTotal    prometheus.Counter
	suggestionResults   prometheus.Histogram
}

// New creates the collectors and registers them, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		providerFetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_provider_fetch_total",
				Help: "Weather provider fetches by outcome",
			},
			[]string{"provider", "outcome"},
		),
		suggestionsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "city_suggestion_requests_total",
				Help: "Total number of city suggestion lookups",
			},
		),
		suggestionResults: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "city_suggestion_results",
				Help:    "Number of names returned per suggestion lookup",
				Buckets: []float64{0, 1, 2, 5, 10, 20},
			},
		),
	}
}

// ObserveFetch implements weather.Recorder.
func (m *Metrics) ObserveFetch(provider string, kind weather.Kind) {
	m.providerFetchTotal.WithLabelValues(provider, kind.String()).Inc()
}

// ObserveSuggestions records one suggestion lookup that returned n names.
func (m *Metrics) ObserveSuggestions(n int) {
	m.suggestionsTotal.Inc()
	m.suggestionResults.Observe(float64(n))
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
