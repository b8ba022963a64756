// Package metrics exposes Prometheus instruments for collection stores.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tiliavir/healthsync/internal/lifecycle"
	"github.com/Tiliavir/healthsync/internal/store"
)

const namespace = "healthsync"

// Lifecycle counts lifecycle transitions and tracks in-flight operations
// per collection. It implements store.Observer.
type Lifecycle struct {
	transitions *prometheus.CounterVec
	inFlight    *prometheus.GaugeVec
}

// NewLifecycle creates the instruments and registers them with reg.
func NewLifecycle(reg prometheus.Registerer) (*Lifecycle, error) {
	m := &Lifecycle{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_transitions_total",
			Help:      "Lifecycle transitions applied to collection stores.",
		}, []string{"collection", "operation", "phase"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operations_in_flight",
			Help:      "Fetch and create calls that have not settled yet.",
		}, []string{"collection"}),
	}
	for _, c := range []prometheus.Collector{m.transitions, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements store.Observer.
func (m *Lifecycle) Observe(collection string, kind store.OpKind, phase lifecycle.Phase) {
	m.transitions.WithLabelValues(collection, string(kind), string(phase)).Inc()
	switch phase {
	case lifecycle.Pending:
		m.inFlight.WithLabelValues(collection).Inc()
	case lifecycle.Fulfilled, lifecycle.Rejected:
		m.inFlight.WithLabelValues(collection).Dec()
	}
}
