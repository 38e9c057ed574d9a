package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRecalculo_CountsByAggregate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRecalculo("compra", "agregar", time.Millisecond)
	m.ObserveRecalculo("compra", "agregar", time.Millisecond)
	m.ObserveRecalculo("venta", "eliminar", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recalculos.WithLabelValues("compra", "agregar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recalculos.WithLabelValues("venta", "eliminar")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRecalculo("compra", "agregar", time.Second)
		m.IncrementDenegacion("sin_permiso")
		m.SetDLQ("jobs:auditoria", 3)
	})
}

func TestSetDLQ(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetDLQ("jobs:auditoria", 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DLQPendientes.WithLabelValues("jobs:auditoria")))
}
