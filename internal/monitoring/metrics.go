package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics owns a private registry so tests and multiple servers do not
// collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	inference      *prometheus.HistogramVec
	backendHealthy *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlp_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		inference: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nlp_inference_duration_seconds",
			Help:    "Time spent in summarization and sentiment inference.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"task", "outcome"}),
		backendHealthy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nlp_backend_healthy",
			Help: "1 when the last health check of a backend succeeded.",
		}, []string{"backend"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.inference,
		m.backendHealthy,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveRequest(route, method, status string) {
	m.requests.WithLabelValues(route, method, status).Inc()
}

func (m *Metrics) ObserveInference(task string, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.inference.WithLabelValues(task, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) SetBackendHealthy(backend string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	m.backendHealthy.WithLabelValues(backend).Set(v)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
