package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ListByCompany(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Warehouse, error)
}

// WarehouseTxRepository acceso a bodegas dentro de una transacción; mismas reglas que ProductTxRepository.
type WarehouseTxRepository interface {
	GetForShare(ctx context.Context, id string) (*entity.Warehouse, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error)
	SetDeleted(ctx context.Context, warehouse *entity.Warehouse) error
}
