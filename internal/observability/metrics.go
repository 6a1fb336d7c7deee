package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// OTPSends counts send-otp attempts by outcome
	OTPSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_send_total",
			Help: "Number of OTP send attempts",
		},
		[]string{"status"},
	)

	// OTPVerifications counts verify-otp attempts by result
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verify_total",
			Help: "Number of OTP verification attempts",
		},
		[]string{"result"},
	)

	OfferSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_send_total",
			Help: "Number of promotional message send attempts",
		},
		[]string{"status"},
	)

	// PendingCodes is the number of records held by the OTP store
	PendingCodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "otp_pending_codes",
			Help: "Number of OTP records currently stored",
		},
	)
)
