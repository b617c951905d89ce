package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every HTTP handler, labelled by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "laptopdesk_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// Total number of HTTP requests served
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "laptopdesk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// Reserve/release attempts by outcome
	ReservationOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "laptopdesk_reservation_outcomes_total",
		Help: "Reservation attempts by operation and outcome",
	}, []string{"operation", "outcome"})

	TicketsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "laptopdesk_tickets_created_total",
		Help: "Total number of tickets opened",
	})

	// Assignment lifecycle events (assigned, offboarded)
	AssignmentEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "laptopdesk_assignment_events_total",
		Help: "Assignment lifecycle events",
	}, []string{"event"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		ReservationOutcomesTotal,
		TicketsCreatedTotal,
		AssignmentEventsTotal,
	)
}
