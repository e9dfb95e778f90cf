package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe; incluye productos con borrado lógico.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Product, error)
}

// ProductTxRepository acceso a productos dentro de una transacción (TxRunner).
// Ambos Get devuelven (nil, nil) si el producto no existe.
type ProductTxRepository interface {
	// GetForShare lee con bloqueo compartido: un borrado concurrente espera al commit.
	GetForShare(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee con bloqueo exclusivo; lo usan borrado y restauración.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// SetDeleted persiste el borrado lógico (o su restauración).
	SetDeleted(ctx context.Context, product *entity.Product) error
}
