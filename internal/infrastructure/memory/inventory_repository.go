package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// InventoryRepository lecturas y escrituras fuera de transacción sobre lo confirmado.
// Los métodos de bloqueo solo tienen efecto real vía TxRunner.
type InventoryRepository struct {
	store *Store
}

func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) rows() []*entity.Inventory {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Inventory, 0, len(r.store.inventory))
	for _, v := range r.store.inventory {
		out = append(out, cloneInventory(v))
	}
	return out
}

func (r *InventoryRepository) GetForUpdate(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	return r.Get(ctx, key)
}

func (r *InventoryRepository) LockOrCreate(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.inventory[key]
	if !ok {
		inv = newInventoryRow(key)
		r.store.inventory[key] = inv
	}
	return cloneInventory(inv), nil
}

func (r *InventoryRepository) Save(_ context.Context, inv *entity.Inventory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := keyOf(inv)
	if _, ok := r.store.inventory[key]; !ok {
		return domain.ErrNotFound
	}
	r.store.inventory[key] = cloneInventory(inv)
	return nil
}

func (r *InventoryRepository) Get(_ context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if inv, ok := r.store.inventory[key]; ok {
		return cloneInventory(inv), nil
	}
	return nil, nil
}

func (r *InventoryRepository) ListByCompany(_ context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.Inventory, error) {
	return listByCompany(r.rows(), companyID, warehouseID, limit, offset), nil
}

func (r *InventoryRepository) ListLowStock(_ context.Context, companyID, warehouseID string) ([]*entity.Inventory, error) {
	return listLowStock(r.rows(), companyID, warehouseID), nil
}

func (r *InventoryRepository) SumByProduct(_ context.Context, companyID, productID string) (int64, error) {
	return sumWhere(r.rows(), func(i *entity.Inventory) bool {
		return i.CompanyID == companyID && i.ProductID == productID
	}), nil
}

func (r *InventoryRepository) SumByCompany(_ context.Context, companyID string) (int64, error) {
	return sumWhere(r.rows(), func(i *entity.Inventory) bool { return i.CompanyID == companyID }), nil
}

func (r *InventoryRepository) StockByWarehouse(_ context.Context, companyID string, limit int) ([]entity.WarehouseStock, error) {
	return stockByWarehouse(r.store, r.rows(), companyID, limit), nil
}

func (r *InventoryRepository) HasPositiveByProduct(_ context.Context, productID string) (bool, error) {
	return anyPositive(r.rows(), func(i *entity.Inventory) bool { return i.ProductID == productID }), nil
}

func (r *InventoryRepository) HasPositiveByWarehouse(_ context.Context, warehouseID string) (bool, error) {
	return anyPositive(r.rows(), func(i *entity.Inventory) bool { return i.WarehouseID == warehouseID }), nil
}

// txInventoryRepository misma interfaz, atada a una transacción en curso.
type txInventoryRepository struct {
	tx *tx
}

func (r *txInventoryRepository) GetForUpdate(_ context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	if inv := r.tx.lookup(key); inv != nil {
		return cloneInventory(inv), nil
	}
	return nil, nil
}

func (r *txInventoryRepository) LockOrCreate(_ context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	inv := r.tx.lookup(key)
	if inv == nil {
		inv = newInventoryRow(key)
		r.tx.inventory[key] = inv
	}
	return cloneInventory(inv), nil
}

func (r *txInventoryRepository) Save(_ context.Context, inv *entity.Inventory) error {
	key := keyOf(inv)
	if r.tx.lookup(key) == nil {
		return domain.ErrNotFound
	}
	r.tx.inventory[key] = cloneInventory(inv)
	return nil
}

func (r *txInventoryRepository) Get(ctx context.Context, key repository.InventoryKey) (*entity.Inventory, error) {
	return r.GetForUpdate(ctx, key)
}

func (r *txInventoryRepository) ListByCompany(_ context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.Inventory, error) {
	return listByCompany(r.tx.rows(), companyID, warehouseID, limit, offset), nil
}

func (r *txInventoryRepository) ListLowStock(_ context.Context, companyID, warehouseID string) ([]*entity.Inventory, error) {
	return listLowStock(r.tx.rows(), companyID, warehouseID), nil
}

func (r *txInventoryRepository) SumByProduct(_ context.Context, companyID, productID string) (int64, error) {
	return sumWhere(r.tx.rows(), func(i *entity.Inventory) bool {
		return i.CompanyID == companyID && i.ProductID == productID
	}), nil
}

func (r *txInventoryRepository) SumByCompany(_ context.Context, companyID string) (int64, error) {
	return sumWhere(r.tx.rows(), func(i *entity.Inventory) bool { return i.CompanyID == companyID }), nil
}

func (r *txInventoryRepository) StockByWarehouse(_ context.Context, companyID string, limit int) ([]entity.WarehouseStock, error) {
	return stockByWarehouse(r.tx.store, r.tx.rows(), companyID, limit), nil
}

func (r *txInventoryRepository) HasPositiveByProduct(_ context.Context, productID string) (bool, error) {
	return anyPositive(r.tx.rows(), func(i *entity.Inventory) bool { return i.ProductID == productID }), nil
}

func (r *txInventoryRepository) HasPositiveByWarehouse(_ context.Context, warehouseID string) (bool, error) {
	return anyPositive(r.tx.rows(), func(i *entity.Inventory) bool { return i.WarehouseID == warehouseID }), nil
}

// ── consultas compartidas ─────────────────────────────────────────────────────

func newInventoryRow(key repository.InventoryKey) *entity.Inventory {
	now := time.Now()
	return &entity.Inventory{
		ID:          uuid.New().String(),
		CompanyID:   key.CompanyID,
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func keyOf(inv *entity.Inventory) repository.InventoryKey {
	return repository.InventoryKey{CompanyID: inv.CompanyID, ProductID: inv.ProductID, WarehouseID: inv.WarehouseID}
}

func sortRows(rows []*entity.Inventory) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].WarehouseID < rows[j].WarehouseID
	})
}

func listByCompany(rows []*entity.Inventory, companyID, warehouseID string, limit, offset int) []*entity.Inventory {
	out := make([]*entity.Inventory, 0)
	for _, inv := range rows {
		if inv.CompanyID == companyID && (warehouseID == "" || inv.WarehouseID == warehouseID) {
			out = append(out, inv)
		}
	}
	sortRows(out)
	return page(out, limit, offset)
}

func listLowStock(rows []*entity.Inventory, companyID, warehouseID string) []*entity.Inventory {
	out := make([]*entity.Inventory, 0)
	for _, inv := range rows {
		if inv.CompanyID == companyID && (warehouseID == "" || inv.WarehouseID == warehouseID) && inv.IsLowStock() {
			out = append(out, inv)
		}
	}
	sortRows(out)
	return out
}

func sumWhere(rows []*entity.Inventory, match func(*entity.Inventory) bool) int64 {
	var total int64
	for _, inv := range rows {
		if match(inv) {
			total += inv.Quantity
		}
	}
	return total
}

func anyPositive(rows []*entity.Inventory, match func(*entity.Inventory) bool) bool {
	for _, inv := range rows {
		if match(inv) && inv.Quantity > 0 {
			return true
		}
	}
	return false
}

func stockByWarehouse(s *Store, rows []*entity.Inventory, companyID string, limit int) []entity.WarehouseStock {
	totals := make(map[string]int64)
	for _, inv := range rows {
		if inv.CompanyID == companyID {
			totals[inv.WarehouseID] += inv.Quantity
		}
	}
	s.mu.RLock()
	out := make([]entity.WarehouseStock, 0, len(totals))
	for whID, total := range totals {
		ws := entity.WarehouseStock{WarehouseID: whID, Total: total}
		if wh, ok := s.warehouses[whID]; ok {
			ws.WarehouseName = wh.Name
		}
		out = append(out, ws)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return page(out, limit, 0)
}
