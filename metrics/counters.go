package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chargecast",
	Name:      "provider_fetch_total",
	Help:      "Total number of generation data fetches.",
}, []string{"provider"})

var fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chargecast",
	Name:      "provider_fetch_failures_total",
	Help:      "Total number of failed generation data fetches.",
}, []string{"provider"})

var fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "chargecast",
	Name:      "provider_fetch_duration_seconds",
	Help:      "Duration of generation data fetches.",
	Buckets:   prometheus.DefBuckets,
}, []string{"provider"})

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chargecast",
	Name:      "http_requests_total",
	Help:      "Total number of handled HTTP requests.",
}, []string{"path", "status"})

// ObserveFetch records one provider fetch with its duration and outcome.
func ObserveFetch(provider string, elapsed time.Duration, failed bool) {
	if len(provider) == 0 {
		return
	}
	fetchCounter.With(prometheus.Labels{"provider": provider}).Inc()
	fetchDuration.With(prometheus.Labels{"provider": provider}).Observe(elapsed.Seconds())
	if failed {
		fetchFailures.With(prometheus.Labels{"provider": provider}).Inc()
	}
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(path string, status int) {
	if len(path) == 0 {
		return
	}
	requestCounter.With(prometheus.Labels{"path": path, "status": strconv.Itoa(status)}).Inc()
}
