package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// SupplierUseCase catálogo de proveedores. No interviene en el kardex.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	audit inventory.AuditSink
	log   *logger.Logger
}

func NewSupplierUseCase(repo repository.SupplierRepository, audit inventory.AuditSink, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierUseCase{repo: repo, audit: audit, log: log}
}

// Create registra un proveedor en la empresa del actor.
func (uc *SupplierUseCase) Create(ctx context.Context, actor inventory.Actor, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := applySupplier(s, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionCreate, "supplier", s.ID, nil,
		map[string]any{"name": s.Name, "identification": s.Identification})
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, actor inventory.Actor, id string) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List proveedores ordenados por nombre; search filtra por nombre, identificación o email.
func (uc *SupplierUseCase) List(ctx context.Context, actor inventory.Actor, search string, includeDeleted bool, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID, strings.TrimSpace(search), includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update reemplaza los datos del proveedor. Un proveedor eliminado no se edita.
func (uc *SupplierUseCase) Update(ctx context.Context, actor inventory.Actor, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.IsDeleted {
		return nil, domain.Wrap(domain.ErrNotFound, "supplier", id)
	}
	before := supplierSnapshot(s)
	if err := applySupplier(s, in, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionUpdate, "supplier", s.ID, before, supplierSnapshot(s))
	return toSupplierResponse(s), nil
}

// SoftDelete marca el proveedor como eliminado.
func (uc *SupplierUseCase) SoftDelete(ctx context.Context, actor inventory.Actor, id string) error {
	s, err := uc.load(ctx, actor, id)
	if err != nil || s.IsDeleted {
		return err
	}
	s.SoftDelete(time.Now())
	if err := uc.repo.Update(ctx, s); err != nil {
		return err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionDelete, "supplier", s.ID,
		map[string]any{"is_deleted": false}, map[string]any{"is_deleted": true})
	return nil
}

func (uc *SupplierUseCase) Restore(ctx context.Context, actor inventory.Actor, id string) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.IsDeleted {
		return toSupplierResponse(s), nil
	}
	s.Restore(time.Now())
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionRestore, "supplier", s.ID,
		map[string]any{"is_deleted": true}, map[string]any{"is_deleted": false})
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) load(ctx context.Context, actor inventory.Actor, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != actor.CompanyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// applySupplier copia los campos editables normalizados.
func applySupplier(s *entity.Supplier, in dto.SupplierRequest, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	identification := strings.TrimSpace(in.Identification)
	if name == "" || identification == "" {
		return domain.ErrInvalidInput
	}
	s.Name = name
	s.Identification = identification
	s.ContactName = strings.TrimSpace(in.ContactName)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.Address = strings.TrimSpace(in.Address)
	s.City = strings.TrimSpace(in.City)
	s.Country = strings.TrimSpace(in.Country)
	if s.Country == "" {
		s.Country = entity.DefaultSupplierCountry
	}
	s.Website = strings.TrimSpace(in.Website)
	s.Notes = in.Notes
	s.UpdatedAt = now
	return nil
}

func supplierSnapshot(s *entity.Supplier) map[string]any {
	return map[string]any{
		"name":           s.Name,
		"identification": s.Identification,
		"email":          s.Email,
		"phone":          s.Phone,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		Identification: s.Identification,
		ContactName:    s.ContactName,
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		City:           s.City,
		Country:        s.Country,
		Website:        s.Website,
		Notes:          s.Notes,
		IsActive:       s.IsActive,
		IsDeleted:      s.IsDeleted,
		DeletedAt:      s.DeletedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
