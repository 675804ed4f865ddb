package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the visibility module.
type Metrics struct {
	// Resolutions by effective visibility
	Resolutions *prometheus.CounterVec

	// References dropped at the reveal gate, by cause ("no_claim", "removed", "pending")
	GateDenials *prometheus.CounterVec
}

// New creates a new Metrics instance with all visibility module metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "memoria_visibility_resolutions_total",
			Help: "Total visibility resolutions by effective visibility",
		}, []string{"visibility"}),

		GateDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "memoria_visibility_gate_denials_total",
			Help: "Total person references withheld at the reveal gate by cause",
		}, []string{"cause"}),
	}
}

// IncrementResolution records one resolution outcome.
func (m *Metrics) IncrementResolution(visibility string) {
	if m != nil {
		m.Resolutions.WithLabelValues(visibility).Inc()
	}
}

// IncrementGateDenial records one reference withheld from a payload.
func (m *Metrics) IncrementGateDenial(cause string) {
	if m != nil {
		m.GateDenials.WithLabelValues(cause).Inc()
	}
}
