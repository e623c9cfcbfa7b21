package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boutique_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boutique_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ImagesUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boutique_images_uploaded_total",
			Help: "Number of images accepted and processed.",
		},
	)

	ImageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boutique_image_processing_duration_seconds",
			Help:    "Time spent generating image variants.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// FeedRequestsTotal counts feed responses by the source they were served from.
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boutique_feed_requests_total",
			Help: "Feed responses by source (cache, api, stale_cache, error).",
		},
		[]string{"source"},
	)

	FeedRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boutique_feed_refresh_total",
			Help: "Provider refresh attempts by result.",
		},
		[]string{"result"},
	)

	FeedMirroredImagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boutique_feed_mirrored_images_total",
			Help: "Feed media files copied into local storage.",
		},
	)

	// CircuitBreakerState is 0 for closed, 1 for half-open and 2 for open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "boutique_circuit_breaker_state",
			Help: "Current circuit breaker state by breaker name.",
		},
		[]string{"name"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
