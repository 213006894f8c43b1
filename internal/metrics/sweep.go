package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/trapcalc/internal/orchestration"
)

const namespace = "trapcalc"

// UnknownReducer labels a pass whose reducer did not report a name.
const UnknownReducer = "unknown"

// SweepMetrics records one observation per sweep iteration.
type SweepMetrics struct {
	registry *prometheus.Registry

	iterations     prometheus.Counter
	discrepancies  prometheus.Counter
	droppedTraps   prometheus.Counter
	reductions     *prometheus.CounterVec
	reductionTime  *prometheus.HistogramVec
	lastN          prometheus.Gauge
	lastDifference prometheus.Gauge
}

var _ orchestration.SweepObserver = (*SweepMetrics)(nil)

// NewSweepMetrics creates the metric set on a fresh registry, together with
// the Go runtime and process collectors.
func NewSweepMetrics() *SweepMetrics {
	m := &SweepMetrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Sweep iterations completed.",
		}),
		discrepancies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discrepancies_total",
			Help:      "Iterations where the two reducers produced different totals.",
		}),
		droppedTraps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_trapezoids_total",
			Help:      "Trapezoids lost to partition truncation, summed over iterations.",
		}),
		reductions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reductions_total",
			Help:      "Parallel reductions executed, by reducer name.",
		}, []string{"reducer"}),
		reductionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reduction_duration_seconds",
			Help:      "Wall-clock time of one parallel reduction.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"reducer"}),
		lastN: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_n",
			Help:      "Subdivision count of the most recent iteration.",
		}),
		lastDifference: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_difference",
			Help:      "First-pass minus second-pass total of the most recent iteration.",
		}),
	}
	m.registry.MustRegister(
		m.iterations,
		m.discrepancies,
		m.droppedTraps,
		m.reductions,
		m.reductionTime,
		m.lastN,
		m.lastDifference,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveIteration implements orchestration.SweepObserver.
func (m *SweepMetrics) ObserveIteration(res orchestration.IterationResult) {
	m.iterations.Inc()
	if res.Mismatch() {
		m.discrepancies.Inc()
	}
	m.droppedTraps.Add(float64(res.Residual))

	first, second := reducerLabel(res.FirstReducer), reducerLabel(res.SecondReducer)
	m.reductions.WithLabelValues(first).Inc()
	m.reductions.WithLabelValues(second).Inc()
	m.reductionTime.WithLabelValues(first).Observe(res.UnsyncDuration.Seconds())
	m.reductionTime.WithLabelValues(second).Observe(res.SyncDuration.Seconds())

	m.lastN.Set(float64(res.N))
	m.lastDifference.Set(res.Unsynchronized - res.Synchronized)
}

// reducerLabel uses the reducer's own name so a run with the hazard
// disabled reports two synchronized passes rather than a phantom hazard one.
func reducerLabel(name string) string {
	if name == "" {
		return UnknownReducer
	}
	return name
}

// Registry returns the registry holding the sweep metrics.
func (m *SweepMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *SweepMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
