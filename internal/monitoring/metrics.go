// Package monitoring exposes the engine's Prometheus metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the engine reports to. Registered once at
// construction via promauto; served by the /metrics endpoint.
type Metrics struct {
	CommandsExecuted *prometheus.CounterVec
	EventsAppended   *prometheus.CounterVec
	TickDays         prometheus.Counter
	FoldDuration     prometheus.Histogram
	AppendLatency    prometheus.Histogram
	BusPublished     prometheus.Counter
}

// NewMetrics registers the collectors on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		CommandsExecuted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "laundrosim",
			Name:      "commands_executed_total",
			Help:      "Commands processed, labelled by kind and outcome.",
		}, []string{"kind", "status"}),

		EventsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "laundrosim",
			Name:      "events_appended_total",
			Help:      "Events committed to the journal, labelled by kind.",
		}, []string{"kind"}),

		TickDays: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "laundrosim",
			Name:      "tick_days_total",
			Help:      "Simulated days processed by the autonomous ticker.",
		}),

		FoldDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "laundrosim",
			Name:      "fold_duration_seconds",
			Help:      "Time to rebuild an agent state from its stream.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),

		AppendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "laundrosim",
			Name:      "journal_append_seconds",
			Help:      "Latency of journal append batches.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),

		BusPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "laundrosim",
			Name:      "bus_events_published_total",
			Help:      "Events fanned out on the event bus after commit.",
		}),
	}
}
