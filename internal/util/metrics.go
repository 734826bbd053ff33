package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected order placements",
	}, []string{"reason"})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	OrderPlacementLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_placement_latency_seconds",
		Help:    "Latency of the order placement transaction",
		Buckets: prometheus.DefBuckets,
	})

	StockDebitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_units_debited_total",
		Help: "Total stock units debited by placed orders",
	})

	StockRestoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_units_restored_total",
		Help: "Total stock units restored by cancellations",
	})

	LoginThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_throttled_total",
		Help: "Total login attempts rejected by the rate limiter",
	})

	FulfillmentEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_events_total",
		Help: "Fulfillment events consumed, by type and outcome",
	}, []string{"type", "outcome"})

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
