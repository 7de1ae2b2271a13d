package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Posts    prometheus.Gauge
	Events   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		Posts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blog_posts",
			Help: "Number of posts currently stored.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_post_events_processed_total",
			Help: "Post events drained from the queue by type.",
		}, []string{"type"}),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.Duration,
		m.Posts,
		m.Events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
