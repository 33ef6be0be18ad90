package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersCreated        prometheus.Counter
	Transitions          *prometheus.CounterVec
	TransitionConflicts  prometheus.Counter
	EstimationsFailed    prometheus.Counter
	EstimationLatencySec prometheus.Histogram
	PollCycles           prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_created_total"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "order_transitions_total"}, []string{"to"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_transition_conflicts_total"})
	estimationsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "eta_estimations_failed_total"})
	estimationLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "eta_estimation_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	pollCycles := prometheus.NewCounter(prometheus.CounterOpts{Name: "watch_poll_cycles_total"})

	r.MustRegister(ordersCreated, transitions, conflicts, estimationsFailed, estimationLatency, pollCycles)

	return &Registry{
		reg:                  r,
		OrdersCreated:        ordersCreated,
		Transitions:          transitions,
		TransitionConflicts:  conflicts,
		EstimationsFailed:    estimationsFailed,
		EstimationLatencySec: estimationLatency,
		PollCycles:           pollCycles,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
