package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Model calls dominate, so the upper
	// buckets reach the default model timeout.
	latencyBuckets = []float64{
		5, 25, 100,
		250, 500, 1000,
		2500, 5000, 10000,
		20000, 40000, 60000,
	}

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_hawk_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compliance_hawk_request_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	VerdictsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_hawk_verdicts_total",
			Help: "Audit verdicts by interpretation outcome and severity tier",
		},
		[]string{"outcome", "tier"},
	)

	ModelLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compliance_hawk_model_latency_ms",
			Help:    "Model generation latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider", "result"},
	)

	ModelAvailable = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "compliance_hawk_model_available",
			Help: "1 when the model adapter is configured, 0 when it is disabled",
		},
		[]string{"provider"},
	)

	// ModelBreakerState is 0 closed, 1 half-open, 2 open.
	ModelBreakerState = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "compliance_hawk_model_breaker_state",
			Help: "Circuit breaker state of the model adapter",
		},
		[]string{"provider"},
	)
)

type MetricsConfig struct {
	Enabled bool
}

var (
	Config      MetricsConfig
	runtimeOnce sync.Once
)

// Initialize may be called more than once; runtime collectors are registered
// the first time metrics are enabled.
func Initialize(cfg MetricsConfig) {
	Config = cfg
	if !cfg.Enabled {
		return
	}
	runtimeOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// Handler serves this package's registry only.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// BreakerStateChanged matches httpx.NewCircuitBreaker's onChange hook.
func BreakerStateChanged(name string, _, to gobreaker.State) {
	var value float64
	switch to {
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	ModelBreakerState.WithLabelValues(name).Set(value)
}

// RiskTier buckets a risk score for the verdict counter.
func RiskTier(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}
