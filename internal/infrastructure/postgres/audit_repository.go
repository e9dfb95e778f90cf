package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, company_id, actor_id, action, entity_type, entity_id, before, after, occurred_at`

// AuditRepo persiste eventos en audit_logs.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Record inserta el evento; before/after se guardan como JSONB.
func (r *AuditRepo) Record(ctx context.Context, ev entity.AuditEvent) error {
	query := `INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		ev.ID, ev.CompanyID, ev.ActorID, ev.Action, ev.EntityType, ev.EntityID, ev.Before, ev.After, ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func scanAudit(row pgx.Row) (*entity.AuditEvent, error) {
	var ev entity.AuditEvent
	err := row.Scan(
		&ev.ID, &ev.CompanyID, &ev.ActorID, &ev.Action, &ev.EntityType, &ev.EntityID,
		&ev.Before, &ev.After, &ev.OccurredAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// List del más reciente al más antiguo.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter, limit, offset int) ([]entity.AuditEvent, error) {
	query := `SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE company_id = $1
		  AND ($2::text = '' OR action = $2::text)
		  AND ($3::text = '' OR entity_type = $3::text)
		  AND ($4::text = '' OR entity_id = $4::text)
		  AND ($5::text = '' OR actor_id = $5::text)
		ORDER BY occurred_at DESC, id
		LIMIT NULLIF($6::int, 0) OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		f.CompanyID, f.Action, f.EntityType, f.EntityID, f.ActorID, limit, offset)
	if err != nil {
		return nil, queryErr("list audit logs", err)
	}
	defer rows.Close()
	out := make([]entity.AuditEvent, 0)
	for rows.Next() {
		ev, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list audit logs", err)
	}
	return out, nil
}

// GetByID (nil, nil) si no existe o el id no es un UUID.
func (r *AuditRepo) GetByID(ctx context.Context, id string) (*entity.AuditEvent, error) {
	ev, err := scanAudit(r.q.QueryRow(ctx, `SELECT `+auditColumns+` FROM audit_logs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit log: %w", err)
	}
	return ev, nil
}
