package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	storeFailuresTotal   *prometheus.CounterVec
	faqViewsTotal        prometheus.Counter
	announcementsCache   *prometheus.CounterVec
	eventPublishFailures *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clarify_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clarify_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clarify_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		storeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clarify_store_failures_total",
			Help: "Store operations that failed and were reported as neutral failures.",
		}, []string{"operation"})

		faqViewsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clarify_faq_views_total",
			Help: "FAQ detail reads that incremented a view counter.",
		})

		announcementsCache = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clarify_announcements_cache_total",
			Help: "Announcement list lookups by cache outcome.",
		}, []string{"result"})

		eventPublishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clarify_event_publish_failures_total",
			Help: "Domain events that could not be published.",
		}, []string{"subject"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			storeFailuresTotal,
			faqViewsTotal,
			announcementsCache,
			eventPublishFailures,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// StoreFailures exposes the counter of failed store operations.
func StoreFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return storeFailuresTotal
}

// FAQViews exposes the FAQ view counter.
func FAQViews() prometheus.Counter {
	RegisterMetrics()
	return faqViewsTotal
}

// AnnouncementsCache exposes the announcement cache outcome counter.
func AnnouncementsCache() *prometheus.CounterVec {
	RegisterMetrics()
	return announcementsCache
}

// EventPublishFailures exposes the counter of dropped domain events.
func EventPublishFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return eventPublishFailures
}

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
