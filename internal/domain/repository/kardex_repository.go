package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// KardexRepository puerto append-only del kardex.
type KardexRepository interface {
	// Create inserta la entrada y asigna ID y Seq.
	Create(ctx context.Context, entry *entity.KardexEntry) error
	// Latest devuelve la entrada más reciente (mayor Seq) del par; (nil, nil) si no hay.
	Latest(ctx context.Context, companyID, productID, warehouseID string) (*entity.KardexEntry, error)
	// ListByProduct lista en orden cronológico; warehouseID vacío = todas las bodegas.
	ListByProduct(ctx context.Context, companyID, productID, warehouseID string, limit, offset int) ([]*entity.KardexEntry, error)
	// ListByMovement entradas generadas por un movimiento (dos en un traslado), por seq.
	ListByMovement(ctx context.Context, companyID, movementID string) ([]*entity.KardexEntry, error)
}
