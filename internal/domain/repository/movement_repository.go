package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// MovementFilter criterios del listado de movimientos. Campo vacío = sin filtro.
// WarehouseID coincide tanto con la bodega de origen como con la de destino.
type MovementFilter struct {
	CompanyID   string
	Type        string
	ProductID   string
	WarehouseID string
}

// MovementRepository puerto append-only de movimientos: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
}
