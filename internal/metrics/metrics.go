// Package metrics exposes Prometheus collectors for StockAI.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockai",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockai",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method"},
	)

	credentialResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockai",
			Name:      "credential_resolutions_total",
			Help:      "Credential resolutions by capability and the tier that answered.",
		},
		[]string{"capability", "source"},
	)

	agentFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockai",
			Name:      "agent_fallbacks_total",
			Help:      "Agent calls answered with a simulated response.",
		},
		[]string{"endpoint"},
	)

	newsFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockai",
			Subsystem: "news",
			Name:      "fetches_total",
			Help:      "News aggregation attempts by outcome.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		credentialResolutions,
		agentFallbacks,
		newsFetches,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method string, status int, duration time.Duration) {
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordCredentialResolution counts which tier answered a resolve call.
func RecordCredentialResolution(capability, source string) {
	credentialResolutions.WithLabelValues(capability, source).Inc()
}

// RecordAgentFallback counts a simulated agent response.
func RecordAgentFallback(endpoint string) {
	agentFallbacks.WithLabelValues(endpoint).Inc()
}

// RecordNewsFetch counts a news aggregation by outcome ("ok" or "error").
func RecordNewsFetch(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	newsFetches.WithLabelValues(result).Inc()
}
