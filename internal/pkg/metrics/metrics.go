// Package metrics exposes Prometheus counters for the order lifecycle
// reactor. Metrics are registered on the default registry and served by the
// HTTP adapter on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// EventsHandledTotal counts domain events processed by the reactor,
	// labelled by message name.
	EventsHandledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_events_handled_total",
		Help: "Total domain events processed by the order lifecycle reactor",
	}, []string{"event"})

	// EventsUnrecognizedTotal counts events the reactor ignored because no
	// reaction is registered for them.
	EventsUnrecognizedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_events_unrecognized_total",
		Help: "Total domain events ignored because no reaction is registered",
	})

	// TransitionsAppliedTotal counts state transitions applied to orders,
	// labelled by transition name.
	TransitionsAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_applied_total",
		Help: "Total state transitions applied to orders",
	}, []string{"transition"})
)

func init() {
	prometheus.MustRegister(EventsHandledTotal, EventsUnrecognizedTotal, TransitionsAppliedTotal)
}
