package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-kardex/internal/application/report"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

var kardexColumns = []column{
	{"Fecha", 2, align.Left},
	{"Tipo", 1, align.Center},
	{"Referencia", 2, align.Left},
	{"Entrada", 1, align.Right},
	{"Salida", 1, align.Right},
	{"Saldo", 1, align.Right},
	{"C. unitario", 1, align.Right},
	{"C. promedio", 1, align.Right},
	{"Valor saldo", 2, align.Right},
}

// GenerateKardexPDF tarjeta de kardex de un producto con resumen valorizado.
func (g *MarotoGenerator) GenerateKardexPDF(_ context.Context, data report.KardexReportData) ([]byte, error) {
	m := newDocument("Kardex "+data.Product.SKU, data.Company.Name)

	m.AddRows(headerRow(data.Company, "KARDEX DE INVENTARIO", data.GeneratedAt))
	m.AddRows(separator(0.5))
	m.AddRows(productRow(data))
	m.AddRows(separator(0.3))

	m.AddRows(tableHeaderRow(kardexColumns))
	for _, e := range data.Entries {
		m.AddRows(tableRow(kardexColumns, []string{
			e.CreatedAt.Format("02/01/2006 15:04"),
			e.MovementType,
			e.Reference,
			quantity(e.InputQuantity),
			quantity(e.OutputQuantity),
			fmt.Sprintf("%d", e.BalanceQuantity),
			"$" + formatMoney(e.UnitCost),
			"$" + formatMoney(e.AverageCost),
			"$" + formatMoney(e.BalanceValue),
		}, nil))
	}

	m.AddRows(separator(0.3))
	m.AddRows(summaryRow(data.Entries))
	if data.Truncated {
		m.AddRows(noteRow(fmt.Sprintf("Reporte limitado a las primeras %d entradas.", len(data.Entries))))
	}
	return render(m, "kardex")
}

func productRow(data report.KardexReportData) core.Row {
	scope := "Todas las bodegas"
	if data.Warehouse != nil {
		scope = fmt.Sprintf("Bodega %s (%s)", data.Warehouse.Name, data.Warehouse.Code)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%s  -  %s", data.Product.SKU, data.Product.Name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Costo actual: $%s", scope, formatMoney(data.Product.CostPrice)), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func summaryRow(entries []*entity.KardexEntry) core.Row {
	var in, out int64
	for _, e := range entries {
		in += e.InputQuantity
		out += e.OutputQuantity
	}
	final := "-"
	if n := len(entries); n > 0 {
		last := entries[n-1]
		final = fmt.Sprintf("%d unidades  /  $%s", last.BalanceQuantity, formatMoney(last.BalanceValue))
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(label("Total entradas:", 1), label("Total salidas:", 6), label("Saldo final:", 11)),
		col.New(3).Add(value(fmt.Sprintf("%d", in), 1), value(fmt.Sprintf("%d", out), 6), value(final, 11)),
	)
}
