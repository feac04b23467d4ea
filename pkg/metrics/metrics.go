package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by method, path and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safealert_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency per route
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "safealert_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Logins counts login attempts by outcome
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safealert_logins_total",
		Help: "Total login attempts by outcome",
	}, []string{"outcome"})

	// OTPVerifications counts OTP verification attempts by outcome
	OTPVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safealert_otp_verifications_total",
		Help: "Total OTP verification attempts by outcome",
	}, []string{"outcome"})

	// PaymentConfirmations counts payment confirmation attempts by outcome
	PaymentConfirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safealert_payment_confirmations_total",
		Help: "Total payment confirmation attempts by outcome",
	}, []string{"outcome"})
)
