package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// MovementRepository movimientos confirmados (append-only).
type MovementRepository struct {
	store *Store
}

func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, cloneMovement(m))
	return nil
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

// List del más reciente al más antiguo.
func (r *MovementRepository) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Movement, 0)
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if matchesMovement(m, f) {
			out = append(out, cloneMovement(m))
		}
	}
	return page(out, limit, offset), nil
}

func matchesMovement(m *entity.Movement, f repository.MovementFilter) bool {
	switch {
	case m.CompanyID != f.CompanyID:
		return false
	case f.Type != "" && m.Type != f.Type:
		return false
	case f.ProductID != "" && m.ProductID != f.ProductID:
		return false
	case f.WarehouseID != "" && m.WarehouseFromID != f.WarehouseID && m.WarehouseToID != f.WarehouseID:
		return false
	}
	return true
}

// All devuelve todos los movimientos confirmados en orden de inserción.
func (r *MovementRepository) All() []*entity.Movement {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Movement, 0, len(r.store.movements))
	for _, m := range r.store.movements {
		out = append(out, cloneMovement(m))
	}
	return out
}

// KardexRepository kardex confirmado (append-only).
type KardexRepository struct {
	store *Store
}

func NewKardexRepository(store *Store) *KardexRepository {
	return &KardexRepository{store: store}
}

func (r *KardexRepository) Create(_ context.Context, k *entity.KardexEntry) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	k.Seq = r.store.seq
	r.store.kardex = append(r.store.kardex, cloneKardex(k))
	return nil
}

func (r *KardexRepository) Latest(_ context.Context, companyID, productID, warehouseID string) (*entity.KardexEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return latest(r.store.kardex, nil, companyID, productID, warehouseID), nil
}

func (r *KardexRepository) ListByMovement(_ context.Context, companyID, movementID string) ([]*entity.KardexEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.KardexEntry, 0, 2)
	for _, k := range r.store.kardex {
		if k.CompanyID == companyID && k.MovementID == movementID {
			out = append(out, cloneKardex(k))
		}
	}
	return out, nil
}

func (r *KardexRepository) ListByProduct(_ context.Context, companyID, productID, warehouseID string, limit, offset int) ([]*entity.KardexEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.KardexEntry, 0)
	for _, k := range r.store.kardex {
		if k.CompanyID == companyID && k.ProductID == productID && (warehouseID == "" || k.WarehouseID == warehouseID) {
			out = append(out, cloneKardex(k))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return page(out, limit, offset), nil
}

// latest busca primero en lo pendiente (staged) y luego en lo confirmado.
func latest(committed, staged []*entity.KardexEntry, companyID, productID, warehouseID string) *entity.KardexEntry {
	for _, list := range [][]*entity.KardexEntry{staged, committed} {
		for i := len(list) - 1; i >= 0; i-- {
			k := list[i]
			if k.CompanyID == companyID && k.ProductID == productID && k.WarehouseID == warehouseID {
				return cloneKardex(k)
			}
		}
	}
	return nil
}

type txMovementRepository struct {
	tx *tx
}

func (r *txMovementRepository) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.tx.movements = append(r.tx.movements, cloneMovement(m))
	return nil
}

func (r *txMovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.tx.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return NewMovementRepository(r.tx.store).GetByID(ctx, id)
}

func (r *txMovementRepository) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	return NewMovementRepository(r.tx.store).List(ctx, f, limit, offset)
}

type txKardexRepository struct {
	tx *tx
}

func (r *txKardexRepository) Create(_ context.Context, k *entity.KardexEntry) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	r.tx.seq++
	k.Seq = r.tx.seq
	r.tx.kardex = append(r.tx.kardex, cloneKardex(k))
	return nil
}

func (r *txKardexRepository) Latest(_ context.Context, companyID, productID, warehouseID string) (*entity.KardexEntry, error) {
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	return latest(r.tx.store.kardex, r.tx.kardex, companyID, productID, warehouseID), nil
}

func (r *txKardexRepository) ListByProduct(ctx context.Context, companyID, productID, warehouseID string, limit, offset int) ([]*entity.KardexEntry, error) {
	return NewKardexRepository(r.tx.store).ListByProduct(ctx, companyID, productID, warehouseID, limit, offset)
}

func (r *txKardexRepository) ListByMovement(ctx context.Context, companyID, movementID string) ([]*entity.KardexEntry, error) {
	return NewKardexRepository(r.tx.store).ListByMovement(ctx, companyID, movementID)
}
