package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickbite_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quickbite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickbite_orders_created_total",
		Help: "Orders placed",
	})

	OrdersCancelledStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickbite_orders_cancelled_stale_total",
		Help: "Orders cancelled by the payment-timeout job",
	})

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickbite_login_attempts_total",
			Help: "Login attempts by path and outcome",
		},
		[]string{"path", "outcome"},
	)
)
