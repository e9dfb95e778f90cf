package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-kardex/internal/application/report"
)

var inventoryColumns = []column{
	{"Producto", 3, align.Left},
	{"SKU", 2, align.Left},
	{"Bodega", 2, align.Left},
	{"Cantidad", 1, align.Right},
	{"Stock Mínimo", 2, align.Right},
	{"Estado", 2, align.Center},
}

// GenerateInventoryPDF existencias por producto y bodega; bajo stock en rojo.
func (g *MarotoGenerator) GenerateInventoryPDF(_ context.Context, data report.InventoryReportData) ([]byte, error) {
	m := newDocument("Reporte de inventario", data.Company.Name)

	m.AddRows(headerRow(data.Company, "REPORTE DE INVENTARIO", data.GeneratedAt))
	m.AddRows(separator(0.5))
	scope := "Todas las bodegas"
	if data.Warehouse != nil {
		scope = fmt.Sprintf("Bodega %s (%s)", data.Warehouse.Name, data.Warehouse.Code)
	}
	var low int
	for _, r := range data.Rows {
		if r.LowStock {
			low++
		}
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(text.New(
		fmt.Sprintf("%s   |   %d registros   |   %d en bajo stock", scope, len(data.Rows), low),
		props.Text{Style: fontstyle.Bold, Size: 9, Top: 2},
	))))
	m.AddRows(separator(0.3))

	m.AddRows(tableHeaderRow(inventoryColumns))
	for _, r := range data.Rows {
		status, color := "Normal", (*props.Color)(nil)
		if r.LowStock {
			status, color = "Bajo Stock", colorAlert
		}
		m.AddRows(tableRow(inventoryColumns, []string{
			r.ProductName,
			r.SKU,
			r.WarehouseName,
			fmt.Sprintf("%d", r.Quantity),
			fmt.Sprintf("%d", r.MinStock),
			status,
		}, color))
	}
	if len(data.Rows) == 0 {
		m.AddRows(noteRow("Sin existencias."))
	}
	if data.Truncated {
		m.AddRows(noteRow(fmt.Sprintf("Reporte limitado a los primeros %d registros.", len(data.Rows))))
	}
	return render(m, "inventario")
}
