package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the registration and notification pipeline.
type Metrics struct {
	Registrations  prometheus.Counter
	Decisions      *prometheus.CounterVec
	BadgesRendered prometheus.Counter
	EmailsSent     *prometheus.CounterVec
	EmailFailures  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festreg_registrations_total",
			Help: "Total number of registrations submitted",
		}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festreg_decisions_total",
			Help: "Total number of admin decisions by outcome",
		}, []string{"status"}),
		BadgesRendered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festreg_badges_rendered_total",
			Help: "Total number of badge PDFs rendered",
		}),
		EmailsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festreg_emails_sent_total",
			Help: "Total number of notification emails sent by type",
		}, []string{"type"}),
		EmailFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festreg_email_failures_total",
			Help: "Total number of notification emails that failed to send",
		}),
	}
}
