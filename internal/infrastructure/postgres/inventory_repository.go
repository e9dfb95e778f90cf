package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, company_id, product_id, warehouse_id, quantity, min_stock, max_stock,
	location, last_movement, created_at, updated_at`

// InventoryRepo saldos por (empresa, producto, bodega) sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.MinStock,
		&inv.MaxStock, &inv.Location, &inv.LastMovement, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). (nil, nil) si no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, key.CompanyID, key.ProductID, key.WarehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get inventory for update", err)
	}
	return inv, nil
}

// LockOrCreate inserta la fila en cero si no existe (ON CONFLICT DO NOTHING) y luego la bloquea.
func (r *InventoryRepo) LockOrCreate(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	insert := `
		INSERT INTO inventory (id, company_id, product_id, warehouse_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), key.CompanyID, key.ProductID, key.WarehouseID); err != nil {
		return nil, wrapErr("create inventory", err)
	}
	inv, err := r.GetForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("create inventory: fila no visible tras insert")
	}
	return inv, nil
}

// Save persiste cantidad, límites, ubicación y último movimiento.
func (r *InventoryRepo) Save(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory
		SET quantity = $2, min_stock = $3, max_stock = $4, location = $5, last_movement = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Quantity, inv.MinStock, inv.MaxStock, inv.Location, inv.LastMovement, inv.UpdatedAt,
	)
	if err != nil {
		return wrapErr("save inventory", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get obtiene la fila sin bloquear. (nil, nil) si no existe.
func (r *InventoryRepo) Get(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, key.CompanyID, key.ProductID, key.WarehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// ListByCompany lista saldos; warehouseID vacío = todas las bodegas.
func (r *InventoryRepo) ListByCompany(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE company_id = $1 AND ($2::uuid IS NULL OR warehouse_id = $2::uuid)
		ORDER BY product_id, warehouse_id
		LIMIT $3 OFFSET $4`
	return r.list(ctx, query, companyID, nullIfEmpty(warehouseID), limit, offset)
}

// ListLowStock filas con quantity <= min_stock.
func (r *InventoryRepo) ListLowStock(ctx context.Context, companyID, warehouseID string) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE company_id = $1 AND ($2::uuid IS NULL OR warehouse_id = $2::uuid)
		  AND quantity <= min_stock
		ORDER BY product_id, warehouse_id`
	return r.list(ctx, query, companyID, nullIfEmpty(warehouseID))
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, queryErr("list inventory", err)
	}
	defer rows.Close()
	var out []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list inventory", err)
	}
	return out, nil
}

// SumByProduct Σ quantity del producto en todas las bodegas.
func (r *InventoryRepo) SumByProduct(ctx context.Context, companyID, productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE company_id = $1 AND product_id = $2`,
		companyID, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum inventory: %w", err)
	}
	return total, nil
}

// SumByCompany Σ quantity de toda la empresa.
func (r *InventoryRepo) SumByCompany(ctx context.Context, companyID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE company_id = $1`, companyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum inventory: %w", err)
	}
	return total, nil
}

// StockByWarehouse totales por bodega, de mayor a menor. limit 0 = sin límite.
func (r *InventoryRepo) StockByWarehouse(ctx context.Context, companyID string, limit int) ([]entity.WarehouseStock, error) {
	query := `
		SELECT i.warehouse_id, w.name, COALESCE(SUM(i.quantity), 0)::bigint
		FROM inventory i
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.company_id = $1
		GROUP BY i.warehouse_id, w.name
		ORDER BY 3 DESC, 1
		LIMIT NULLIF($2::int, 0)`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("stock by warehouse: %w", err)
	}
	defer rows.Close()
	var out []entity.WarehouseStock
	for rows.Next() {
		var ws entity.WarehouseStock
		if err := rows.Scan(&ws.WarehouseID, &ws.WarehouseName, &ws.Total); err != nil {
			return nil, fmt.Errorf("scan stock by warehouse: %w", err)
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

// HasPositiveByProduct indica si el producto tiene unidades en alguna bodega.
func (r *InventoryRepo) HasPositiveByProduct(ctx context.Context, productID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM inventory WHERE product_id = $1 AND quantity > 0)`, productID)
}

// HasPositiveByWarehouse indica si la bodega guarda unidades de algún producto.
func (r *InventoryRepo) HasPositiveByWarehouse(ctx context.Context, warehouseID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM inventory WHERE warehouse_id = $1 AND quantity > 0)`, warehouseID)
}

func (r *InventoryRepo) exists(ctx context.Context, query string, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check inventory: %w", err)
	}
	return ok, nil
}
