package memory

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// TxRunner implementa inventory.TxRunner sobre el Store. Lo escrito dentro de fn
// queda en un área temporal y solo se aplica si fn no devuelve error.
type TxRunner struct {
	store *Store
}

func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// tx escrituras pendientes de una transacción.
type tx struct {
	store      *Store
	inventory  map[repository.InventoryKey]*entity.Inventory
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	movements  []*entity.Movement
	kardex     []*entity.KardexEntry
	seq        int64
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepositories) error) error {
	if err := r.store.acquire(ctx); err != nil {
		return err
	}
	defer r.store.release()

	r.store.mu.RLock()
	t := &tx{
		store:      r.store,
		inventory:  make(map[repository.InventoryKey]*entity.Inventory),
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		seq:        r.store.seq,
	}
	r.store.mu.RUnlock()

	repos := inventory.TxRepositories{
		Inventory:  &txInventoryRepository{tx: t},
		Movements:  &txMovementRepository{tx: t},
		Kardex:     &txKardexRepository{tx: t},
		Products:   &txProductRepository{tx: t},
		Warehouses: &txWarehouseRepository{tx: t},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.commit(t)
	return nil
}

// rows vista fusionada: lo confirmado con lo pendiente encima.
func (t *tx) rows() []*entity.Inventory {
	t.store.mu.RLock()
	merged := make(map[repository.InventoryKey]*entity.Inventory, len(t.store.inventory)+len(t.inventory))
	for k, v := range t.store.inventory {
		merged[k] = v
	}
	t.store.mu.RUnlock()
	for k, v := range t.inventory {
		merged[k] = v
	}
	out := make([]*entity.Inventory, 0, len(merged))
	for _, v := range merged {
		out = append(out, cloneInventory(v))
	}
	return out
}

func (t *tx) lookup(key repository.InventoryKey) *entity.Inventory {
	if inv, ok := t.inventory[key]; ok {
		return inv
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.inventory[key]
}
