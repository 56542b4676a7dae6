package internal

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("nil metrics are a no-op", func(t *testing.T) {
		var m *Metrics

		assert.NotPanics(t, func() {
			m.EffectRun(EffectUser)
			m.EffectDestroyed()
			m.TeardownFailure()
			m.BatchFlush(3)
			m.KeyedOps(1, 2, 3, 4)
		})
	})

	t.Run("counts", func(t *testing.T) {
		m := NewMetrics(prometheus.NewRegistry(), "")

		m.EffectRun(EffectUser)
		m.EffectRun(EffectUser)
		m.EffectRun(EffectRender)
		m.BatchFlush(3)
		m.KeyedOps(1, 2, 3, 4)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.effectRuns.WithLabelValues("user")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.effectRuns.WithLabelValues("render")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.batchFlushes))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.batchedRuns))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.keyedOps.WithLabelValues("moved")))
		assert.Equal(t, 4.0, testutil.ToFloat64(m.keyedOps.WithLabelValues("destroyed")))
	})
}
