package transport

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staff_core_http_requests_total",
		Help: "Total number of settlement service requests by endpoint and status.",
	},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "staff_core_http_request_duration_seconds",
		Help:    "Latency of settlement service requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "endpoint"},
	)
)

func observe(method, endpoint, status string, start time.Time) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

// metricEndpoint keeps label cardinality bounded: segments holding a digit
// are treated as ids and collapsed to ":id".
func metricEndpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if strings.ContainsAny(p, "0123456789") {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
