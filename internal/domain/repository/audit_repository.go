package repository

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// AuditFilter criterios del listado de auditoría. Campo vacío = sin filtro.
type AuditFilter struct {
	CompanyID  string
	Action     string
	EntityType string
	EntityID   string
	ActorID    string
}

// AuditRepository persiste y consulta eventos de auditoría (tabla audit_logs).
type AuditRepository interface {
	Record(ctx context.Context, event entity.AuditEvent) error
	// List del más reciente al más antiguo.
	List(ctx context.Context, filter AuditFilter, limit, offset int) ([]entity.AuditEvent, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.AuditEvent, error)
}
