package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// recordAudit entrega el evento al sink; un fallo solo se registra en el log.
func recordAudit(ctx context.Context, sink inventory.AuditSink, log *logger.Logger, actor inventory.Actor, action, entityType, entityID string, before, after map[string]any) {
	if sink == nil {
		return
	}
	err := sink.Record(ctx, entity.AuditEvent{
		ID:         uuid.New().String(),
		CompanyID:  actor.CompanyID,
		ActorID:    actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Before:     before,
		After:      after,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("action", action).Str("entity_id", entityID).Msg("auditoría: no se pudo registrar el evento")
	}
}
