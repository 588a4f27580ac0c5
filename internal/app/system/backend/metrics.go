// internal/app/system/backend/metrics.go
package backend

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diocesehub",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Backend API requests broken down by resource, method and status code.",
	}, []string{"resource", "method", "code"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "diocesehub",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of backend API requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"resource", "method"})
)

// observe records one finished request. code is 0 for transport failures.
func observe(resource, method string, code int, took time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	requestsTotal.With(prometheus.Labels{"resource": resource, "method": method, "code": label}).Inc()
	requestLatency.With(prometheus.Labels{"resource": resource, "method": method}).Observe(took.Seconds())
}
