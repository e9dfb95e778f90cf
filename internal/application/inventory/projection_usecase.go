package inventory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

const (
	dashboardTopWarehouses   = 5
	dashboardRecentMovements = 10
)

// ProjectionUseCase consultas de solo lectura sobre saldos y kardex. Nunca muta.
type ProjectionUseCase struct {
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.MovementRepository
	kardexRepo    repository.KardexRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

func NewProjectionUseCase(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.MovementRepository,
	kardexRepo repository.KardexRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ProjectionUseCase {
	return &ProjectionUseCase{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		kardexRepo:    kardexRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// TotalStock suma la cantidad del producto en todas las bodegas de la empresa.
func (uc *ProjectionUseCase) TotalStock(ctx context.Context, companyID, productID string) (*dto.TotalStockResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	total, err := uc.inventoryRepo.SumByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("sumar stock: %w", err)
	}
	return &dto.TotalStockResponse{ProductID: productID, Total: total}, nil
}

// StockByWarehouse total de unidades por bodega, de mayor a menor.
func (uc *ProjectionUseCase) StockByWarehouse(ctx context.Context, companyID string) ([]dto.WarehouseStockDTO, error) {
	rows, err := uc.inventoryRepo.StockByWarehouse(ctx, companyID, 0)
	if err != nil {
		return nil, fmt.Errorf("stock por bodega: %w", err)
	}
	return toWarehouseStockDTOs(rows), nil
}

// LowStock filas con cantidad ≤ stock mínimo. warehouseID vacío = todas las bodegas.
func (uc *ProjectionUseCase) LowStock(ctx context.Context, companyID, warehouseID string) ([]dto.InventoryResponse, error) {
	rows, err := uc.inventoryRepo.ListLowStock(ctx, companyID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	out := make([]dto.InventoryResponse, 0, len(rows))
	for _, inv := range rows {
		out = append(out, ToInventoryResponse(inv))
	}
	return out, nil
}

// ListInventory saldos paginados de la empresa.
func (uc *ProjectionUseCase) ListInventory(ctx context.Context, companyID, warehouseID string, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	rows, err := uc.inventoryRepo.ListByCompany(ctx, companyID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar inventario: %w", err)
	}
	items := make([]dto.InventoryResponse, 0, len(rows))
	for _, inv := range rows {
		items = append(items, ToInventoryResponse(inv))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// KardexHistory historial cronológico del producto; warehouseID vacío = todas las bodegas.
func (uc *ProjectionUseCase) KardexHistory(ctx context.Context, companyID, productID, warehouseID string, page dto.PageRequest) (*dto.KardexListResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	rows, err := uc.kardexRepo.ListByProduct(ctx, companyID, productID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("historial kardex: %w", err)
	}
	items := make([]dto.KardexEntryResponse, 0, len(rows))
	for _, k := range rows {
		items = append(items, toKardexResponse(k))
	}
	return &dto.KardexListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListMovements movimientos de la empresa, del más reciente al más antiguo.
func (uc *ProjectionUseCase) ListMovements(ctx context.Context, companyID string, f dto.MovementFilterRequest, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	rows, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		CompanyID:   companyID,
		Type:        f.Type,
		ProductID:   f.ProductID,
		WarehouseID: f.WarehouseID,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetMovement detalle del movimiento con sus entradas de kardex. Un movimiento
// de otra empresa se informa como inexistente.
func (uc *ProjectionUseCase) GetMovement(ctx context.Context, companyID, id string) (*dto.MovementDetailResponse, error) {
	m, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener movimiento: %w", err)
	}
	if m == nil || m.CompanyID != companyID {
		return nil, domain.Wrap(domain.ErrNotFound, "movement", id)
	}
	entries, err := uc.kardexRepo.ListByMovement(ctx, companyID, m.ID)
	if err != nil {
		return nil, fmt.Errorf("kardex del movimiento: %w", err)
	}
	out := &dto.MovementDetailResponse{
		MovementResponse: ToMovementResponse(m),
		Kardex:           make([]dto.KardexEntryResponse, 0, len(entries)),
	}
	for _, k := range entries {
		out.Kardex = append(out.Kardex, toKardexResponse(k))
	}

	p, err := uc.productRepo.GetByID(ctx, m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p != nil {
		out.ProductSKU, out.ProductName = p.SKU, p.Name
	}
	if out.WarehouseFromName, err = uc.warehouseName(ctx, m.WarehouseFromID); err != nil {
		return nil, err
	}
	if out.WarehouseToName, err = uc.warehouseName(ctx, m.WarehouseToID); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ProjectionUseCase) warehouseName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("obtener bodega: %w", err)
	}
	if w == nil {
		return "", nil
	}
	return w.Name, nil
}

// DashboardSummary KPIs de inventario. Las cuatro consultas corren en paralelo.
func (uc *ProjectionUseCase) DashboardSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	var (
		total     int64
		byWH      []entity.WarehouseStock
		low       []*entity.Inventory
		movements []*entity.Movement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.inventoryRepo.SumByCompany(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		byWH, err = uc.inventoryRepo.StockByWarehouse(gctx, companyID, dashboardTopWarehouses)
		return err
	})
	g.Go(func() error {
		var err error
		low, err = uc.inventoryRepo.ListLowStock(gctx, companyID, "")
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = uc.movementRepo.List(gctx, repository.MovementFilter{CompanyID: companyID}, dashboardRecentMovements, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	recent := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		recent = append(recent, ToMovementResponse(m))
	}
	return &dto.DashboardSummaryDTO{
		TotalUnits:      total,
		LowStockCount:   len(low),
		TopWarehouses:   toWarehouseStockDTOs(byWH),
		RecentMovements: recent,
	}, nil
}

func (uc *ProjectionUseCase) checkProduct(ctx context.Context, companyID, productID string) error {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return domain.Wrap(domain.ErrNotFound, "product", productID)
	}
	if p.CompanyID != companyID {
		return domain.Wrap(domain.ErrCrossTenantReference, "product", productID)
	}
	return nil
}
