package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, company_id, type, status, product_id, quantity, warehouse_from_id, warehouse_to_id,
	unit_cost, total_cost, reference, notes, created_by, processed_at, created_at`

// MovementRepo movimientos append-only (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento. No existe Update ni Delete.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Type, m.Status, m.ProductID, m.Quantity,
		nullIfEmpty(m.WarehouseFromID), nullIfEmpty(m.WarehouseToID),
		m.UnitCost, m.TotalCost, m.Reference, m.Notes, m.CreatedBy, m.ProcessedAt, m.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert movement", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m        entity.Movement
		from, to *string
	)
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Type, &m.Status, &m.ProductID, &m.Quantity, &from, &to,
		&m.UnitCost, &m.TotalCost, &m.Reference, &m.Notes, &m.CreatedBy, &m.ProcessedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.WarehouseFromID = derefString(from)
	m.WarehouseToID = derefString(to)
	return &m, nil
}

// GetByID (nil, nil) si no existe o el id no es un UUID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List del más reciente al más antiguo. La bodega filtra por origen o destino.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements
		WHERE company_id = $1
		  AND ($2::text = '' OR type = $2::text)
		  AND ($3::uuid IS NULL OR product_id = $3::uuid)
		  AND ($4::uuid IS NULL OR warehouse_from_id = $4::uuid OR warehouse_to_id = $4::uuid)
		ORDER BY created_at DESC, id
		LIMIT NULLIF($5::int, 0) OFFSET $6`
	rows, err := r.q.Query(ctx, query,
		f.CompanyID, f.Type, nullIfEmpty(f.ProductID), nullIfEmpty(f.WarehouseID), limit, offset)
	if err != nil {
		return nil, queryErr("list movements", err)
	}
	defer rows.Close()
	var out []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list movements", err)
	}
	return out, nil
}
