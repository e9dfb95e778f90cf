package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, company_id, name, identification, contact_name, phone, email, address,
	city, country, website, notes, is_active, is_deleted, deleted_at, created_at, updated_at`

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Identification, s.ContactName, s.Phone, s.Email, s.Address,
		s.City, s.Country, s.Website, s.Notes, s.IsActive, s.IsDeleted, s.DeletedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Identification, &s.ContactName, &s.Phone, &s.Email, &s.Address,
		&s.City, &s.Country, &s.Website, &s.Notes, &s.IsActive, &s.IsDeleted, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// ListByCompany ordena por nombre; search es ILIKE sobre nombre, identificación y email.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID, search string, includeDeleted bool, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + `
		FROM suppliers
		WHERE company_id = $1 AND ($2 OR NOT is_deleted)
		  AND ($3::text = '' OR name ILIKE '%' || $3 || '%'
		       OR identification ILIKE '%' || $3 || '%'
		       OR email ILIKE '%' || $3 || '%')
		ORDER BY name, id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, includeDeleted, search, limit, offset)
	if err != nil {
		return nil, queryErr("list suppliers", err)
	}
	defer rows.Close()
	var out []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list suppliers", err)
	}
	return out, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE suppliers SET
			name = $2, identification = $3, contact_name = $4, phone = $5, email = $6, address = $7,
			city = $8, country = $9, website = $10, notes = $11,
			is_active = $12, is_deleted = $13, deleted_at = $14, updated_at = $15
		WHERE id = $1`,
		s.ID, s.Name, s.Identification, s.ContactName, s.Phone, s.Email, s.Address,
		s.City, s.Country, s.Website, s.Notes, s.IsActive, s.IsDeleted, s.DeletedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
