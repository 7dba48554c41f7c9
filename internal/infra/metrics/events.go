package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(eventsRecordedTotal, generateRequestsTotal)
}

var (
	eventsRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_recorded_total",
			Help: "Total number of events appended to the event log.",
		},
	)

	generateRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generate_requests_total",
			Help: "Outcome of /generate requests.",
		},
		[]string{"outcome"}, // 'ok', 'no_events', 'store_error', 'completion_error', 'transport_error'
	)
)

func IncEventRecorded() {
	eventsRecordedTotal.Inc()
}

func IncGenerate(outcome string) {
	generateRequestsTotal.WithLabelValues(norm(outcome)).Inc()
}
