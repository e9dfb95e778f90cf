package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// InventoryKey identifica una fila de saldo.
type InventoryKey struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
}

// InventoryRepository puerto del saldo actual por (empresa, producto, bodega).
// Los métodos *ForUpdate solo tienen sentido dentro de una transacción: bloquean
// la fila (SELECT ... FOR UPDATE) hasta el commit/rollback.
type InventoryRepository interface {
	// GetForUpdate bloquea y devuelve la fila; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, key InventoryKey) (*entity.Inventory, error)
	// LockOrCreate crea la fila en cero si no existe y la bloquea.
	LockOrCreate(ctx context.Context, key InventoryKey) (*entity.Inventory, error)
	// Save persiste quantity, límites, ubicación y last_movement de una fila ya bloqueada.
	Save(ctx context.Context, inv *entity.Inventory) error

	Get(ctx context.Context, key InventoryKey) (*entity.Inventory, error)
	ListByCompany(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.Inventory, error)
	ListLowStock(ctx context.Context, companyID, warehouseID string) ([]*entity.Inventory, error)
	SumByProduct(ctx context.Context, companyID, productID string) (int64, error)
	SumByCompany(ctx context.Context, companyID string) (int64, error)
	StockByWarehouse(ctx context.Context, companyID string, limit int) ([]entity.WarehouseStock, error)
	HasPositiveByProduct(ctx context.Context, productID string) (bool, error)
	HasPositiveByWarehouse(ctx context.Context, warehouseID string) (bool, error)
}
