package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

const kardexColumns = `seq, id, company_id, movement_id, product_id, warehouse_id, movement_type,
	input_quantity, output_quantity, balance_quantity, input_value, output_value, balance_value,
	unit_cost, average_cost, reference, notes, created_by, created_at`

// KardexRepo historial append-only por producto/bodega (usable con pool o tx).
type KardexRepo struct {
	q Querier
}

func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Create inserta la entrada; seq lo asigna la secuencia de Postgres.
func (r *KardexRepo) Create(ctx context.Context, k *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex (id, company_id, movement_id, product_id, warehouse_id, movement_type,
			input_quantity, output_quantity, balance_quantity, input_value, output_value, balance_value,
			unit_cost, average_cost, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		k.ID, k.CompanyID, k.MovementID, k.ProductID, k.WarehouseID, k.MovementType,
		k.InputQuantity, k.OutputQuantity, k.BalanceQuantity, k.InputValue, k.OutputValue, k.BalanceValue,
		k.UnitCost, k.AverageCost, k.Reference, k.Notes, k.CreatedBy, k.CreatedAt,
	).Scan(&k.Seq)
	if err != nil {
		return wrapErr("insert kardex", err)
	}
	return nil
}

func scanKardex(row pgx.Row) (*entity.KardexEntry, error) {
	var k entity.KardexEntry
	err := row.Scan(
		&k.Seq, &k.ID, &k.CompanyID, &k.MovementID, &k.ProductID, &k.WarehouseID, &k.MovementType,
		&k.InputQuantity, &k.OutputQuantity, &k.BalanceQuantity, &k.InputValue, &k.OutputValue, &k.BalanceValue,
		&k.UnitCost, &k.AverageCost, &k.Reference, &k.Notes, &k.CreatedBy, &k.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// Latest última entrada del par (mayor seq). (nil, nil) si no hay historial.
func (r *KardexRepo) Latest(ctx context.Context, companyID, productID, warehouseID string) (*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		ORDER BY seq DESC LIMIT 1`
	k, err := scanKardex(r.q.QueryRow(ctx, query, companyID, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("latest kardex", err)
	}
	return k, nil
}

// ListByProduct historial cronológico; warehouseID vacío = todas las bodegas.
func (r *KardexRepo) ListByProduct(ctx context.Context, companyID, productID, warehouseID string, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex
		WHERE company_id = $1 AND product_id = $2 AND ($3::uuid IS NULL OR warehouse_id = $3::uuid)
		ORDER BY seq
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, productID, nullIfEmpty(warehouseID), limit, offset)
	if err != nil {
		return nil, queryErr("list kardex", err)
	}
	defer rows.Close()
	var out []*entity.KardexEntry
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list kardex", err)
	}
	return out, nil
}

// ListByMovement entradas de un movimiento en orden de seq.
func (r *KardexRepo) ListByMovement(ctx context.Context, companyID, movementID string) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex
		WHERE company_id = $1 AND movement_id = $2
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, companyID, movementID)
	if err != nil {
		return nil, queryErr("list kardex by movement", err)
	}
	defer rows.Close()
	var out []*entity.KardexEntry
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list kardex by movement", err)
	}
	return out, nil
}
