package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds application-level Prometheus metrics shared across handlers.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	NotesCreated   prometheus.Counter
	UsersCreated   prometheus.Counter
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memoria_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),

		NotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memoria_notes_created_total",
			Help: "Total number of notes contributed",
		}),

		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memoria_users_created_total",
			Help: "Total number of contributors registered",
		}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementNotesCreated increments the notes created counter by 1.
func (m *Metrics) IncrementNotesCreated() {
	if m != nil {
		m.NotesCreated.Inc()
	}
}

// IncrementUsersCreated increments the users created counter by 1.
func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}
