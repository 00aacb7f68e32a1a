// File: metrics/metrics.go
package metrics

import (
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Booking Metrics
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_booked_total",
		Help: "The total number of newly created session bookings.",
	})
	BookingsIdempotent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_booked_idempotent_total",
		Help: "The total number of booking requests answered by an existing session.",
	})
	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_booking_conflicts_total",
		Help: "The total number of bookings rejected because the expert was already booked.",
	})
	BookingRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_booking_retries_total",
		Help: "The total number of booking transactions retried after a transient store conflict.",
	})

	// Lifecycle Metrics
	SessionsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_joined_total",
		Help: "The total number of sessions joined.",
	})
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_completed_total",
		Help: "The total number of sessions completed.",
	})
	InvalidTransitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_invalid_transitions_total",
		Help: "The total number of lifecycle operations rejected for being in the wrong state.",
	})

	// Summary Job Metrics
	SummaryJobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summary_jobs_enqueued_total",
		Help: "The total number of summary-generation jobs enqueued.",
	})
	SummaryEnqueueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summary_jobs_enqueue_failures_total",
		Help: "The total number of summary-generation jobs that could not be enqueued.",
	})
	SummaryJobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summary_jobs_completed_total",
		Help: "The total number of summary-generation jobs completed by the worker.",
	})
	SummaryJobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summary_jobs_failed_total",
		Help: "The total number of summary-generation jobs that failed in the worker.",
	})
)

// StartServer starts the HTTP server for Prometheus metrics.
func StartServer(port int, path string) {
	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting metrics server on %s%s", addr, path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("Failed to start metrics server: %v", err)
		}
	}()
}
