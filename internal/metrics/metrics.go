package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegym_member_registrations_total",
			Help: "Total number of member registrations",
		},
		[]string{"channel"},
	)

	RenewalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codegym_member_renewals_total",
			Help: "Total number of membership renewals",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegym_payments_total",
			Help: "Total number of ledger entries recorded",
		},
		[]string{"kind"},
	)

	RevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codegym_revenue_vnd_total",
			Help: "Total revenue recorded in the ledger, in VND",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegym_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codegym_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	TrainingPlansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codegym_training_plans_created_total",
			Help: "Total number of training plans created",
		},
	)

	ActiveMembers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codegym_active_members",
			Help: "Number of members with an unexpired subscription",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRegistration(channel string) {
	RegistrationsTotal.WithLabelValues(channel).Inc()
}

func RecordRenewal() {
	RenewalsTotal.Inc()
}

func RecordPayment(kind string, amount int64) {
	PaymentsTotal.WithLabelValues(kind).Inc()
	if amount > 0 {
		RevenueTotal.Add(float64(amount))
	}
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordTrainingPlanCreated() {
	TrainingPlansCreatedTotal.Inc()
}
