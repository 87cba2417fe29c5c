package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefly_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "briefly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SummariesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefly_summaries_total",
			Help: "Summarization requests by outcome.",
		},
		[]string{"status"},
	)

	SummarizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefly_summarize_duration_seconds",
			Help:    "Upstream summarization call duration in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "briefly_sessions_active",
			Help: "Number of live sessions in the registry.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SummariesTotal,
		SummarizeDuration,
		SessionsActive,
	)
}
