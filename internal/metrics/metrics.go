package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for recalculations, the permission gate
// and the audit queue.
type Metrics struct {
	// Total recomputations by aggregate ("compra", "venta") and trigger
	Recalculos *prometheus.CounterVec

	RecalculoLatency *prometheus.HistogramVec

	// Denied gate checks by reason: "no_autenticado", "sin_permiso"
	Denegaciones *prometheus.CounterVec

	DLQPendientes *prometheus.GaugeVec
}

// New registers every metric on reg. main and the tests each build their own
// registry so /metrics only exposes what this process registered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Recalculos: f.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_recalculos_total",
			Help: "Total aggregate total recomputations by aggregate and trigger",
		}, []string{"agregado", "origen"}),

		RecalculoLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "comercial_recalculo_duration_seconds",
			Help:    "Duration of the transactional line save and total recompute",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"agregado"}),

		Denegaciones: f.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_autorizacion_denegada_total",
			Help: "Total requests rejected by the permission gate",
		}, []string{"motivo"}),

		DLQPendientes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "comercial_dlq_pendientes",
			Help: "Entries waiting in a dead letter queue",
		}, []string{"queue"}),
	}
}

// ObserveRecalculo records one recompute of an aggregate's totals.
func (m *Metrics) ObserveRecalculo(agregado, origen string, d time.Duration) {
	if m != nil {
		m.Recalculos.WithLabelValues(agregado, origen).Inc()
		m.RecalculoLatency.WithLabelValues(agregado).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDenegacion(motivo string) {
	if m != nil {
		m.Denegaciones.WithLabelValues(motivo).Inc()
	}
}

func (m *Metrics) SetDLQ(queue string, n int64) {
	if m != nil {
		m.DLQPendientes.WithLabelValues(queue).Set(float64(n))
	}
}
