package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// WarehouseUseCase casos de uso para bodegas.
type WarehouseUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.WarehouseRepository
	audit    inventory.AuditSink
	log      *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner inventory.TxRunner, repo repository.WarehouseRepository, audit inventory.AuditSink, log *logger.Logger) *WarehouseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &WarehouseUseCase{txRunner: txRunner, repo: repo, audit: audit, log: log}
}

// Create crea una bodega en la empresa del actor.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor inventory.Actor, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	w := &entity.Warehouse{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		Code:        in.Code,
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionCreate, "warehouse", w.ID, nil,
		map[string]any{"code": w.Code, "name": w.Name})
	return toWarehouseResponse(w), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, actor inventory.Actor, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// List lista bodegas de la empresa.
func (uc *WarehouseUseCase) List(ctx context.Context, actor inventory.Actor, includeDeleted bool, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID, includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// SoftDelete elimina lógicamente la bodega si no guarda unidades de ningún producto.
func (uc *WarehouseUseCase) SoftDelete(ctx context.Context, actor inventory.Actor, id string) error {
	changed, err := uc.setDeleted(ctx, actor, id, true)
	if err != nil || !changed {
		return err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionDelete, "warehouse", id,
		map[string]any{"is_deleted": false}, map[string]any{"is_deleted": true})
	return nil
}

// Restore revierte el borrado lógico.
func (uc *WarehouseUseCase) Restore(ctx context.Context, actor inventory.Actor, id string) (*dto.WarehouseResponse, error) {
	changed, err := uc.setDeleted(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}
	if changed {
		recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionRestore, "warehouse", id,
			map[string]any{"is_deleted": true}, map[string]any{"is_deleted": false})
	}
	return uc.GetByID(ctx, actor, id)
}

// setDeleted cambia el borrado lógico bajo bloqueo exclusivo de la fila. Los
// movimientos en curso la tienen bloqueada en modo compartido, así que el guard de
// inventario positivo ve su resultado confirmado. Devuelve false si no hubo cambio.
func (uc *WarehouseUseCase) setDeleted(ctx context.Context, actor inventory.Actor, id string, deleted bool) (bool, error) {
	changed := false
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepositories) error {
		w, err := repos.Warehouses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		if w.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if w.IsDeleted == deleted {
			return nil
		}
		now := time.Now()
		if !deleted {
			w.Restore(now)
		} else {
			hasStock, err := repos.Inventory.HasPositiveByWarehouse(ctx, w.ID)
			if err != nil {
				return fmt.Errorf("verificar inventario: %w", err)
			}
			if hasStock {
				return domain.Wrap(domain.ErrProtectedDeletion, "warehouse", w.ID)
			}
			w.SoftDelete(now)
		}
		if err := repos.Warehouses.SetDeleted(ctx, w); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (uc *WarehouseUseCase) load(ctx context.Context, actor inventory.Actor, id string) (*entity.Warehouse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.CompanyID != actor.CompanyID {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		Code:        w.Code,
		Name:        w.Name,
		Location:    w.Location,
		Description: w.Description,
		IsActive:    w.IsActive,
		IsDeleted:   w.IsDeleted,
		DeletedAt:   w.DeletedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
