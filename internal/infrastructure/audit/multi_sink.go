package audit

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

var _ inventory.AuditSink = MultiSink(nil)

// MultiSink entrega cada evento a todos los destinos, aunque alguno falle.
// Devuelve los errores unidos.
type MultiSink []inventory.AuditSink

func (m MultiSink) Record(ctx context.Context, ev entity.AuditEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
