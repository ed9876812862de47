package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "saori"

// Metrics holds the pipeline counters. All methods are safe on a nil
// receiver so tests and tools can run without a registry.
type Metrics struct {
	registry *prometheus.Registry

	Responses        *prometheus.CounterVec
	ResponseDuration prometheus.Histogram
	UpstreamFailures *prometheus.CounterVec
	LearningWrites   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Responses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Replies returned, by selection method",
		}, []string{"method", "cache"}),

		ResponseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_duration_seconds",
			Help:      "Time spent selecting a reply",
			Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 2, 5, 10, 15},
		}),

		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Degraded calls to the completion endpoint or the store",
		}, []string{"dependency"}),

		LearningWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "learning_writes_total",
			Help:      "Detached learned-entry writes, by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveResponse(method string, cacheUsed bool, d time.Duration) {
	if m == nil {
		return
	}
	cache := "miss"
	if cacheUsed {
		cache = "hit"
	}
	m.Responses.WithLabelValues(method, cache).Inc()
	m.ResponseDuration.Observe(d.Seconds())
}

func (m *Metrics) UpstreamFailure(dependency string) {
	if m == nil {
		return
	}
	m.UpstreamFailures.WithLabelValues(dependency).Inc()
}

func (m *Metrics) LearningWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.LearningWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
