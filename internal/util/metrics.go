package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed through checkout",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of rejected or failed checkouts",
	}, []string{"reason"})

	CouponSoftFailTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_soft_fail_total",
		Help: "Total number of coupons ignored during checkout",
	}, []string{"reason"})

	StockDecrementTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_decrement_total",
		Help: "Total number of stock decrements applied to managed products",
	})

	OrderStatusChangedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changed_total",
		Help: "Total number of order status changes made by staff",
	}, []string{"status"})

	EventPublishFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_publish_failed_total",
		Help: "Total number of order events that could not be published",
	}, []string{"type"})

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
