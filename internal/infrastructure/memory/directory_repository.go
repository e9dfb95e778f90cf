package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// CompanyRepository empresas.
type CompanyRepository struct {
	store *Store
}

func NewCompanyRepository(store *Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

func (r *CompanyRepository) Create(_ context.Context, c *entity.Company) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *c
	r.store.companies[c.ID] = &cp
	return nil
}

func (r *CompanyRepository) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if c, ok := r.store.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// ProductRepository productos; el SKU es único por empresa.
type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, other := range r.store.products {
		if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if p, ok := r.store.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *ProductRepository) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) ListByCompany(_ context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	out := make([]*entity.Product, 0)
	for _, p := range r.store.products {
		if p.CompanyID == companyID && (includeDeleted || !p.IsDeleted) {
			out = append(out, cloneProduct(p))
		}
	}
	r.store.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

// WarehouseRepository bodegas.
type WarehouseRepository struct {
	store *Store
}

func NewWarehouseRepository(store *Store) *WarehouseRepository {
	return &WarehouseRepository{store: store}
}

func (r *WarehouseRepository) Create(_ context.Context, w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, other := range r.store.warehouses {
		// code es único global; name, por empresa.
		if other.Code == w.Code || (other.CompanyID == w.CompanyID && other.Name == w.Name) {
			return domain.ErrDuplicate
		}
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	r.store.warehouses[w.ID] = cloneWarehouse(w)
	return nil
}

func (r *WarehouseRepository) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if w, ok := r.store.warehouses[id]; ok {
		return cloneWarehouse(w), nil
	}
	return nil, nil
}

func (r *WarehouseRepository) ListByCompany(_ context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Warehouse, error) {
	r.store.mu.RLock()
	out := make([]*entity.Warehouse, 0)
	for _, w := range r.store.warehouses {
		if w.CompanyID == companyID && (includeDeleted || !w.IsDeleted) {
			out = append(out, cloneWarehouse(w))
		}
	}
	r.store.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

// AuditRepository guarda los eventos en memoria; también sirve como AuditSink.
type AuditRepository struct {
	store *Store
}

func NewAuditRepository(store *Store) *AuditRepository {
	return &AuditRepository{store: store}
}

func (r *AuditRepository) Record(_ context.Context, event entity.AuditEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audit = append(r.store.audit, event)
	return nil
}

// List del más reciente al más antiguo.
func (r *AuditRepository) List(_ context.Context, f repository.AuditFilter, limit, offset int) ([]entity.AuditEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entity.AuditEvent, 0)
	for i := len(r.store.audit) - 1; i >= 0; i-- {
		ev := r.store.audit[i]
		switch {
		case ev.CompanyID != f.CompanyID,
			f.Action != "" && ev.Action != f.Action,
			f.EntityType != "" && ev.EntityType != f.EntityType,
			f.EntityID != "" && ev.EntityID != f.EntityID,
			f.ActorID != "" && ev.ActorID != f.ActorID:
			continue
		}
		out = append(out, ev)
	}
	return page(out, limit, offset), nil
}

func (r *AuditRepository) GetByID(_ context.Context, id string) (*entity.AuditEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, ev := range r.store.audit {
		if ev.ID == id {
			cp := ev
			return &cp, nil
		}
	}
	return nil, nil
}

// Events devuelve una copia de los eventos registrados.
func (r *AuditRepository) Events() []entity.AuditEvent {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]entity.AuditEvent(nil), r.store.audit...)
}

// txProductRepository lee lo pendiente de la tx y luego lo confirmado. El bloqueo
// lo da la serialización de transacciones del Store.
type txProductRepository struct {
	tx *tx
}

func (r *txProductRepository) GetForShare(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetForUpdate(ctx, id)
}

func (r *txProductRepository) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.tx.products[id]; ok {
		return cloneProduct(p), nil
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	if p, ok := r.tx.store.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *txProductRepository) SetDeleted(ctx context.Context, p *entity.Product) error {
	current, _ := r.GetForUpdate(ctx, p.ID)
	if current == nil {
		return domain.ErrNotFound
	}
	r.tx.products[p.ID] = cloneProduct(p)
	return nil
}

type txWarehouseRepository struct {
	tx *tx
}

func (r *txWarehouseRepository) GetForShare(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.GetForUpdate(ctx, id)
}

func (r *txWarehouseRepository) GetForUpdate(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.tx.warehouses[id]; ok {
		return cloneWarehouse(w), nil
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	if w, ok := r.tx.store.warehouses[id]; ok {
		return cloneWarehouse(w), nil
	}
	return nil, nil
}

func (r *txWarehouseRepository) SetDeleted(ctx context.Context, w *entity.Warehouse) error {
	current, _ := r.GetForUpdate(ctx, w.ID)
	if current == nil {
		return domain.ErrNotFound
	}
	r.tx.warehouses[w.ID] = cloneWarehouse(w)
	return nil
}
