package usecase

import (
	"context"
	"fmt"
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

// ProductUseCase casos de uso del catálogo de productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	audit    inventory.AuditSink
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. audit puede ser nil.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, audit inventory.AuditSink, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{txRunner: txRunner, repo: repo, audit: audit, log: log}
}

// Create crea un nuevo producto. El SKU es único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, actor inventory.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, actor.CompanyID, sku)
	if err != nil {
		return nil, fmt.Errorf("buscar sku: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		SKU:         sku,
		Name:        in.Name,
		Description: in.Description,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionCreate, "product", product.ID, nil,
		map[string]any{"sku": product.SKU, "name": product.Name})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa del actor.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor inventory.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa; includeDeleted incluye los eliminados.
func (uc *ProductUseCase) List(ctx context.Context, actor inventory.Actor, includeDeleted bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID, includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// SoftDelete marca el producto como eliminado. Se rechaza si queda inventario positivo
// en alguna bodega; la historia de movimientos y kardex se conserva.
func (uc *ProductUseCase) SoftDelete(ctx context.Context, actor inventory.Actor, id string) error {
	changed, err := uc.setDeleted(ctx, actor, id, true)
	if err != nil || !changed {
		return err
	}
	recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionDelete, "product", id,
		map[string]any{"is_deleted": false}, map[string]any{"is_deleted": true})
	return nil
}

// Restore revierte el borrado lógico.
func (uc *ProductUseCase) Restore(ctx context.Context, actor inventory.Actor, id string) (*dto.ProductResponse, error) {
	changed, err := uc.setDeleted(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}
	if changed {
		recordAudit(ctx, uc.audit, uc.log, actor, entity.AuditActionRestore, "product", id,
			map[string]any{"is_deleted": true}, map[string]any{"is_deleted": false})
	}
	return uc.GetByID(ctx, actor, id)
}

// setDeleted cambia el borrado lógico bajo bloqueo exclusivo de la fila. Los
// movimientos en curso la tienen bloqueada en modo compartido, así que el guard de
// inventario positivo ve su resultado confirmado. Devuelve false si no hubo cambio.
func (uc *ProductUseCase) setDeleted(ctx context.Context, actor inventory.Actor, id string, deleted bool) (bool, error) {
	changed := false
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepositories) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if product.IsDeleted == deleted {
			return nil
		}
		now := time.Now()
		if !deleted {
			product.Restore(now)
		} else {
			hasStock, err := repos.Inventory.HasPositiveByProduct(ctx, product.ID)
			if err != nil {
				return fmt.Errorf("verificar inventario: %w", err)
			}
			if hasStock {
				return domain.Wrap(domain.ErrProtectedDeletion, "product", product.ID)
			}
			product.SoftDelete(now)
		}
		if err := repos.Products.SetDeleted(ctx, product); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (uc *ProductUseCase) load(ctx context.Context, actor inventory.Actor, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != actor.CompanyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Margin:      p.Margin(),
		IsActive:    p.IsActive,
		IsDeleted:   p.IsDeleted,
		DeletedAt:   p.DeletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
