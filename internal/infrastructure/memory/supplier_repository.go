package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository proveedores; la identificación es única por empresa.
type SupplierRepository struct {
	store *Store
}

func NewSupplierRepository(store *Store) *SupplierRepository {
	return &SupplierRepository{store: store}
}

func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.duplicated(s) {
		return domain.ErrDuplicate
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	r.store.suppliers[s.ID] = cloneSupplier(s)
	return nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if s, ok := r.store.suppliers[id]; ok {
		return cloneSupplier(s), nil
	}
	return nil, nil
}

func (r *SupplierRepository) ListByCompany(_ context.Context, companyID, search string, includeDeleted bool, limit, offset int) ([]*entity.Supplier, error) {
	needle := strings.ToLower(search)
	r.store.mu.RLock()
	out := make([]*entity.Supplier, 0)
	for _, s := range r.store.suppliers {
		if s.CompanyID != companyID || (s.IsDeleted && !includeDeleted) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Identification), needle) &&
			!strings.Contains(strings.ToLower(s.Email), needle) {
			continue
		}
		out = append(out, cloneSupplier(s))
	}
	r.store.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *SupplierRepository) Update(_ context.Context, s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.duplicated(s) {
		return domain.ErrDuplicate
	}
	r.store.suppliers[s.ID] = cloneSupplier(s)
	return nil
}

// duplicated requiere mu tomado.
func (r *SupplierRepository) duplicated(s *entity.Supplier) bool {
	for _, other := range r.store.suppliers {
		if other.ID != s.ID && other.CompanyID == s.CompanyID && other.Identification == s.Identification {
			return true
		}
	}
	return false
}
