package metrics_test

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/metrics"
)

func TestLedgerMetrics_Counters(t *testing.T) {
	m := metrics.New("kardex")

	m.MovementRecorded("IN")
	m.MovementRecorded("IN")
	m.MovementRejected("OUT", &domain.StockError{Available: 1, Requested: 2})

	n, err := testutil.GatherAndCount(m.Registry(), "kardex_ledger_movements_total", "kardex_ledger_rejections_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por combinación de etiquetas")
}

func TestReason(t *testing.T) {
	assert.Equal(t, "insufficient_stock", metrics.Reason(&domain.StockError{}))
	assert.Equal(t, "lock_contention", metrics.Reason(fmt.Errorf("tx: %w", domain.ErrLockContention)))
	assert.Equal(t, "cross_tenant", metrics.Reason(domain.Wrap(domain.ErrCrossTenantReference, "product", "p")))
	assert.Equal(t, "internal", metrics.Reason(fmt.Errorf("boom")))
}
