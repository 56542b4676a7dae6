package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts scheduler activity. Every method is safe on a nil receiver.
type Metrics struct {
	effectRuns       *prometheus.CounterVec
	effectsDestroyed prometheus.Counter
	teardownFailures prometheus.Counter
	batchFlushes     prometheus.Counter
	batchedRuns      prometheus.Counter
	keyedOps         *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "sigflow"
	}

	factory := promauto.With(reg)

	return &Metrics{
		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effect_runs_total",
			Help:      "Total number of effect and computed runs",
		}, []string{"type"}),

		effectsDestroyed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_destroyed_total",
			Help:      "Total number of destroyed effects",
		}),

		teardownFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teardown_failures_total",
			Help:      "Total number of cleanups or child destroys that panicked during teardown",
		}),

		batchFlushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_flushes_total",
			Help:      "Total number of completed outermost batches",
		}),

		batchedRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batched_render_runs_total",
			Help:      "Total number of render effect runs deferred to the end of a batch",
		}),

		keyedOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyed_operations_total",
			Help:      "Keyed reconciliation operations by kind",
		}, []string{"op"}),
	}
}

func (m *Metrics) EffectRun(typ EffectType) {
	if m == nil {
		return
	}
	m.effectRuns.WithLabelValues(typ.String()).Inc()
}

func (m *Metrics) EffectDestroyed() {
	if m == nil {
		return
	}
	m.effectsDestroyed.Inc()
}

func (m *Metrics) TeardownFailure() {
	if m == nil {
		return
	}
	m.teardownFailures.Inc()
}

func (m *Metrics) BatchFlush(runs int) {
	if m == nil {
		return
	}
	m.batchFlushes.Inc()
	m.batchedRuns.Add(float64(runs))
}

// KeyedOps records one reconciliation pass.
func (m *Metrics) KeyedOps(created, reused, moved, destroyed int) {
	if m == nil {
		return
	}
	m.keyedOps.WithLabelValues("created").Add(float64(created))
	m.keyedOps.WithLabelValues("reused").Add(float64(reused))
	m.keyedOps.WithLabelValues("moved").Add(float64(moved))
	m.keyedOps.WithLabelValues("destroyed").Add(float64(destroyed))
}
