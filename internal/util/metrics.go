package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by operation",
	}, []string{"operation"})

	CartMutationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_failed_total",
		Help: "Total number of rejected cart mutations",
	}, []string{"reason"})

	CartPersistTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_total",
		Help: "Total number of successful cart state writes",
	})

	CartPersistFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failed_total",
		Help: "Total number of failed cart state writes",
	})

	CartItemCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cart_item_count",
		Help: "Current total quantity across cart lines",
	})

	RecommendationRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation lookups",
	})

	RecommendationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_failed_total",
		Help: "Total number of recommendation fetches served from fallback",
	})

	CartEventsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_events_published_total",
		Help: "Total number of cart events published",
	})

	CartEventsPublishFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_events_publish_failed_total",
		Help: "Total number of cart event publish failures",
	})

	CartEventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_events_consumed_total",
		Help: "Total number of cart events consumed by the analytics worker",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
