package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// SupplierRepository puerto de persistencia de proveedores.
// Create y Update devuelven domain.ErrDuplicate si la identificación ya existe en la empresa.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	// GetByID devuelve (nil, nil) si no existe; incluye eliminados.
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// ListByCompany ordena por nombre. search busca en nombre, identificación y email.
	ListByCompany(ctx context.Context, companyID, search string, includeDeleted bool, limit, offset int) ([]*entity.Supplier, error)
	// Update persiste todos los campos editables, incluido el borrado lógico.
	Update(ctx context.Context, supplier *entity.Supplier) error
}
