package gridsel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records engine work.
type Recorder interface {
	OverlayComputed(c Concern, elapsed time.Duration)
	StateApplied()
}

type nopRecorder struct{}

// NewNopRecorder constructs a recorder that drops everything.
func NewNopRecorder() Recorder {
	return nopRecorder{}
}

func (nopRecorder) OverlayComputed(Concern, time.Duration) {}
func (nopRecorder) StateApplied()                          {}

type promRecorder struct {
	recomputes *prometheus.CounterVec
	computeDur *prometheus.HistogramVec
	applies    prometheus.Counter
}

// NewPrometheusRecorder constructs a recorder registering its collectors
// with reg under the given namespace.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) Recorder {
	m := &promRecorder{
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_recompute_total",
			Help:      "Overlay concern recomputations, by concern",
		}, []string{"concern"}),
		computeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overlay_compute_seconds",
			Help:      "Time spent recomputing an overlay concern",
			Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05},
		}, []string{"concern"}),
		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_apply_total",
			Help:      "Selection states applied by the scheduler",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.recomputes, m.computeDur, m.applies)
	}
	return m
}

func (m *promRecorder) OverlayComputed(c Concern, elapsed time.Duration) {
	m.recomputes.WithLabelValues(c.String()).Inc()
	m.computeDur.WithLabelValues(c.String()).Observe(elapsed.Seconds())
}

func (m *promRecorder) StateApplied() {
	m.applies.Inc()
}
