package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDurationHistogram tracks latency of the aggregator's own HTTP API
	APIRequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "api_request_duration_seconds",
			Help: "Time taken to serve API requests",
		},
		[]string{"route", "code"},
	)
)

// RecordAPIRequest observes the duration of an API request
func RecordAPIRequest(route string, code string, start time.Time) {
	APIRequestDurationHistogram.WithLabelValues(route, code).Observe(time.Since(start).Seconds())
}
