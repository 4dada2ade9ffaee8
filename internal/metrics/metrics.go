package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registration workflow metrics

	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bojbot",
		Name:      "registrations_total",
		Help:      "Total registration runs, by outcome.",
	}, []string{"outcome"})

	RegistrationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bojbot",
		Name:      "registration_duration_seconds",
		Help:      "Time from challenge issuance to resolution.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	VerificationAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bojbot",
		Name:      "verification_attempts_total",
		Help:      "Submitted links checked during registration runs, by result.",
	}, []string{"result"})

	// Judge site metrics

	JudgeRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bojbot",
		Name:      "judge_request_duration_seconds",
		Help:      "Duration of judge site HTTP requests.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"op"})

	// Admin HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bojbot",
		Name:      "http_request_duration_seconds",
		Help:      "Admin API request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bojbot",
		Name:      "http_requests_total",
		Help:      "Total admin API requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		RegistrationDuration,
		VerificationAttemptsTotal,
		JudgeRequestDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
