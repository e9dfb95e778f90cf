package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// TxRepositories repositorios atados a una misma transacción de BD.
type TxRepositories struct {
	Inventory  repository.InventoryRepository
	Movements  repository.MovementRepository
	Kardex     repository.KardexRepository
	Products   repository.ProductTxRepository
	Warehouses repository.WarehouseTxRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna fila queda escrita; si no, Commit.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}

// AuditSink recibe el hecho de auditoría de forma síncrona, después del commit.
type AuditSink interface {
	Record(ctx context.Context, event entity.AuditEvent) error
}

// LedgerMetrics contadores del kardex. La implementación Prometheus vive en infrastructure/metrics.
type LedgerMetrics interface {
	MovementRecorded(movementType string)
	MovementRejected(movementType string, err error)
}

type noopMetrics struct{}

func (noopMetrics) MovementRecorded(string)        {}
func (noopMetrics) MovementRejected(string, error) {}
