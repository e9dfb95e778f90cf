package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// InventoryReportRow una fila con existencias.
type InventoryReportRow struct {
	SKU           string
	ProductName   string
	WarehouseName string
	Quantity      int64
	MinStock      int64
	LowStock      bool
}

// InventoryReportData existencias de la empresa (o de una bodega si Warehouse no es nil).
type InventoryReportData struct {
	Company     *entity.Company
	Warehouse   *entity.Warehouse
	Rows        []InventoryReportRow
	Truncated   bool
	GeneratedAt time.Time
}

// InventoryPDF reporte de existencias: solo filas con cantidad positiva, ordenadas
// por producto y bodega. "Bajo stock" cuando la cantidad no supera el mínimo.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, companyID, warehouseID string) ([]byte, string, error) {
	warehouse, err := uc.scopeWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	lookup := uc.newNames()
	var rows []InventoryReportRow
	for offset := 0; len(rows) <= maxReportEntries; offset += inventoryPageSize {
		batch, err := uc.inventoryRepo.ListByCompany(ctx, companyID, warehouseID, inventoryPageSize, offset)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: listar inventario: %w", err)
		}
		for _, inv := range batch {
			if inv.Quantity <= 0 {
				continue
			}
			p, err := lookup.product(ctx, inv.ProductID)
			if err != nil {
				return nil, "", err
			}
			whName, err := lookup.warehouse(ctx, inv.WarehouseID)
			if err != nil {
				return nil, "", err
			}
			rows = append(rows, InventoryReportRow{
				SKU:           p.SKU,
				ProductName:   p.Name,
				WarehouseName: whName,
				Quantity:      inv.Quantity,
				MinStock:      inv.MinStock,
				LowStock:      inv.IsLowStock(),
			})
		}
		if len(batch) < inventoryPageSize {
			break
		}
	}
	truncated := len(rows) > maxReportEntries
	if truncated {
		rows = rows[:maxReportEntries]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].WarehouseName < rows[j].WarehouseName
	})

	now := uc.now()
	pdfBytes, err := uc.generator.GenerateInventoryPDF(ctx, InventoryReportData{
		Company:     company,
		Warehouse:   warehouse,
		Rows:        rows,
		Truncated:   truncated,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "inventory_report_" + now.Format("20060102_150405") + ".pdf", nil
}
