// Package report genera reportes descargables (kardex, inventario y movimientos).
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

const (
	// maxReportEntries tope de filas de kardex o de inventario incluidas en un PDF.
	maxReportEntries = 1000
	// maxReportMovements últimos movimientos del reporte de movimientos.
	maxReportMovements = 100
	// inventoryPageSize lote con que se recorre el inventario de la empresa.
	inventoryPageSize = 500
)

// PDFGenerator puerto de renderizado (implementado con maroto en infrastructure/pdf).
type PDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, data KardexReportData) ([]byte, error)
	GenerateInventoryPDF(ctx context.Context, data InventoryReportData) ([]byte, error)
	GenerateMovementsPDF(ctx context.Context, data MovementsReportData) ([]byte, error)
}

// ReportUseCase arma los datos de cada reporte y delega el render al generador.
type ReportUseCase struct {
	companyRepo   repository.CompanyRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.MovementRepository
	kardexRepo    repository.KardexRepository
	generator     PDFGenerator
	now           func() time.Time
}

func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.MovementRepository,
	kardexRepo repository.KardexRepository,
	generator PDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		companyRepo:   companyRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		kardexRepo:    kardexRepo,
		generator:     generator,
		now:           time.Now,
	}
}

func (uc *ReportUseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{ID: companyID}
	}
	return company, nil
}

// scopeWarehouse valida la bodega opcional del reporte; "" devuelve nil.
func (uc *ReportUseCase) scopeWarehouse(ctx context.Context, companyID, warehouseID string) (*entity.Warehouse, error) {
	if warehouseID == "" {
		return nil, nil
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener bodega: %w", err)
	}
	if warehouse == nil {
		return nil, domain.Wrap(domain.ErrNotFound, "warehouse", warehouseID)
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return warehouse, nil
}

// names resuelve nombres de producto y bodega con memoria por reporte.
type names struct {
	uc         *ReportUseCase
	products   map[string]*entity.Product
	warehouses map[string]string
}

func (uc *ReportUseCase) newNames() *names {
	return &names{uc: uc, products: map[string]*entity.Product{}, warehouses: map[string]string{}}
}

func (n *names) product(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := n.products[id]; ok {
		return p, nil
	}
	p, err := n.uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener producto: %w", err)
	}
	if p == nil {
		p = &entity.Product{ID: id, SKU: id}
	}
	n.products[id] = p
	return p, nil
}

func (n *names) warehouse(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	if name, ok := n.warehouses[id]; ok {
		return name, nil
	}
	w, err := n.uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("reporte: obtener bodega: %w", err)
	}
	name := id
	if w != nil {
		name = w.Name
	}
	n.warehouses[id] = name
	return name, nil
}
