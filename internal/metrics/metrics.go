package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "submissions_created_total",
		Help: "Number of submissions successfully stored.",
	})

	SubmissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_rejected_total",
		Help: "Number of submission attempts rejected, by reason.",
	}, []string{"reason"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_publish_failures_total",
		Help: "Number of submission events that could not be delivered.",
	})
)
