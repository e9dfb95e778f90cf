package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// KardexReportData datos que necesita el generador para renderizar el kardex.
// Warehouse nil significa todas las bodegas.
type KardexReportData struct {
	Company     *entity.Company
	Product     *entity.Product
	Warehouse   *entity.Warehouse
	Entries     []*entity.KardexEntry
	Truncated   bool
	GeneratedAt time.Time
}

// KardexPDF genera el PDF del kardex de un producto (opcionalmente de una sola bodega).
//
// Retorna:
//   - domain.ErrNotFound  si el producto o la bodega no existen.
//   - domain.ErrForbidden si pertenecen a otra empresa.
func (uc *ReportUseCase) KardexPDF(ctx context.Context, companyID, productID, warehouseID string) (pdfBytes []byte, filename string, err error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.Wrap(domain.ErrNotFound, "product", productID)
	}
	if product.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	warehouse, err := uc.scopeWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	entries, err := uc.kardexRepo.ListByProduct(ctx, companyID, productID, warehouseID, maxReportEntries+1, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar kardex: %w", err)
	}
	truncated := len(entries) > maxReportEntries
	if truncated {
		entries = entries[:maxReportEntries]
	}

	now := uc.now()
	pdfBytes, err = uc.generator.GenerateKardexPDF(ctx, KardexReportData{
		Company:     company,
		Product:     product,
		Warehouse:   warehouse,
		Entries:     entries,
		Truncated:   truncated,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", err
	}
	filename = fmt.Sprintf("kardex_%s_%s.pdf", product.SKU, now.Format("20060102"))
	return pdfBytes, filename, nil
}
