package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_requests_submitted_total",
		Help: "Total number of adoption requests submitted.",
	})

	RequestsApprovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_requests_approved_total",
		Help: "Total number of adoption requests approved.",
	})

	MeetingsScheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_meetings_scheduled_total",
		Help: "Total number of adoption meetings scheduled.",
	})

	AdoptionsFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_adoptions_finalized_total",
		Help: "Total number of adoptions finalized.",
	})

	PaymentsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_payments_failed_total",
		Help: "Total number of adoption payments that failed at the gateway.",
	})

	VersionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petconnect_version_conflicts_total",
		Help: "Total number of optimistic-lock conflicts hit by the orchestrator.",
	})

	SideEffectErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petconnect_side_effect_errors_total",
		Help: "Total number of post-transition side effect failures.",
	},
		[]string{"effect"},
	)

	AnimalCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "petconnect_animal_cache_items",
		Help: "Current number of animals in the availability cache.",
	})
)
