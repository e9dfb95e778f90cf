// Package metrics expone los contadores del kardex en formato Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
)

var _ inventory.LedgerMetrics = (*LedgerMetrics)(nil)

// LedgerMetrics contadores de movimientos confirmados y rechazados.
type LedgerMetrics struct {
	registry *prometheus.Registry
	recorded *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// New crea un registro propio con los colectores de Go/proceso y los del kardex.
func New(namespace string) *LedgerMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &LedgerMetrics{
		registry: registry,
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "movements_total",
			Help:      "Movimientos confirmados por tipo.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "rejections_total",
			Help:      "Operaciones rechazadas por tipo de movimiento y motivo.",
		}, []string{"type", "reason"}),
	}
	registry.MustRegister(m.recorded, m.rejected)
	return m
}

func (m *LedgerMetrics) MovementRecorded(movementType string) {
	m.recorded.WithLabelValues(movementType).Inc()
}

func (m *LedgerMetrics) MovementRejected(movementType string, err error) {
	m.rejected.WithLabelValues(movementType, Reason(err)).Inc()
}

// Handler sirve /metrics con el registro propio.
func (m *LedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Reason etiqueta acotada para un error del motor.
func Reason(err error) string {
	reasons := []struct {
		kind  error
		label string
	}{
		{domain.ErrInvalidQuantity, "invalid_quantity"},
		{domain.ErrInvalidInput, "invalid_input"},
		{domain.ErrNoInventory, "no_inventory"},
		{domain.ErrInsufficientStock, "insufficient_stock"},
		{domain.ErrSameWarehouse, "same_warehouse"},
		{domain.ErrNoOpAdjustment, "noop_adjustment"},
		{domain.ErrCrossTenantReference, "cross_tenant"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrLockContention, "lock_contention"},
	}
	for _, r := range reasons {
		if errors.Is(err, r.kind) {
			return r.label
		}
	}
	return "internal"
}

// Registry expone el registro (tests y colectores adicionales).
func (m *LedgerMetrics) Registry() *prometheus.Registry {
	return m.registry
}
