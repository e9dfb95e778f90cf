// Package audit contiene los destinos (sinks) de los eventos de auditoría:
// log estructurado, tabla audit_logs y tópico Kafka.
package audit

import (
	"context"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

var _ inventory.AuditSink = (*LogSink)(nil)

// LogSink escribe cada evento como una línea de log (sink por defecto).
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.Component("audit")}
}

func (s *LogSink) Record(_ context.Context, ev entity.AuditEvent) error {
	s.log.Info().
		Str("event_id", ev.ID).
		Str("company_id", ev.CompanyID).
		Str("actor_id", ev.ActorID).
		Str("action", ev.Action).
		Str("entity_type", ev.EntityType).
		Str("entity_id", ev.EntityID).
		Interface("before", ev.Before).
		Interface("after", ev.After).
		Time("occurred_at", ev.OccurredAt).
		Msg("audit")
	return nil
}
