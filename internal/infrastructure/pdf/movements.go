package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/consts/align"

	"github.com/jhoicas/Inventario-kardex/internal/application/report"
)

var movementColumns = []column{
	{"Fecha", 2, align.Left},
	{"Tipo", 1, align.Center},
	{"Producto", 3, align.Left},
	{"Cantidad", 1, align.Right},
	{"Origen", 2, align.Left},
	{"Destino", 2, align.Left},
	{"Usuario", 1, align.Left},
}

// GenerateMovementsPDF listado de movimientos, del más reciente al más antiguo.
func (g *MarotoGenerator) GenerateMovementsPDF(_ context.Context, data report.MovementsReportData) ([]byte, error) {
	m := newDocument("Reporte de movimientos", data.Company.Name)

	m.AddRows(headerRow(data.Company, "REPORTE DE MOVIMIENTOS", data.GeneratedAt))
	m.AddRows(separator(0.5))

	m.AddRows(tableHeaderRow(movementColumns))
	for _, r := range data.Rows {
		m.AddRows(tableRow(movementColumns, []string{
			r.CreatedAt.Format("02/01/2006 15:04"),
			r.Type,
			r.Product,
			fmt.Sprintf("%d", r.Quantity),
			nonEmpty(r.From, "-"),
			nonEmpty(r.To, "-"),
			r.CreatedBy,
		}, nil))
	}
	if len(data.Rows) == 0 {
		m.AddRows(noteRow("Sin movimientos para el filtro indicado."))
	}
	return render(m, "movimientos")
}
