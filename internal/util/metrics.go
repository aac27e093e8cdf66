package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_cancelled_total",
		Help: "Total number of orders cancelled",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_orders_failed_total",
		Help: "Total number of failed order attempts",
	}, []string{"reason"})

	OrderValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "marketplace_order_value",
		Help:    "Grand total of created orders",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	ReviewsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_reviews_submitted_total",
		Help: "Total number of reviews submitted",
	})

	ReviewsModeratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_reviews_moderated_total",
		Help: "Total number of review moderation actions",
	}, []string{"action"})

	RatingRecomputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "marketplace_rating_recompute_latency_seconds",
		Help:    "Latency of product/vendor rating recomputation",
		Buckets: prometheus.DefBuckets,
	})

	LowStockAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_low_stock_alerts_total",
		Help: "Total number of low stock alerts emitted",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_cache_hits_total",
		Help: "Total number of cache hits",
	}, []string{"cache"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_cache_misses_total",
		Help: "Total number of cache misses",
	}, []string{"cache"})

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
