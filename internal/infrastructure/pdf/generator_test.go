package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/report"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

var (
	testNow     = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	testCompany = &entity.Company{ID: "c1", Name: "Acme SAS", NIT: "900123456"}
)

func assertPDF(t *testing.T, out []byte, err error) {
	t.Helper()
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateKardexPDF(t *testing.T) {
	data := report.KardexReportData{
		Company:   testCompany,
		Product:   &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", CostPrice: decimal.NewFromInt(150)},
		Warehouse: &entity.Warehouse{ID: "w1", Code: "B1", Name: "Principal"},
		Entries: []*entity.KardexEntry{
			{MovementType: entity.MovementTypeIN, InputQuantity: 10, BalanceQuantity: 10,
				UnitCost: decimal.NewFromInt(100), AverageCost: decimal.NewFromInt(100), BalanceValue: decimal.NewFromInt(1000), CreatedAt: testNow},
			{MovementType: entity.MovementTypeOUT, OutputQuantity: 4, BalanceQuantity: 6,
				UnitCost: decimal.NewFromInt(100), AverageCost: decimal.NewFromInt(100), BalanceValue: decimal.NewFromInt(600), CreatedAt: testNow},
		},
		GeneratedAt: testNow,
	}

	out, err := NewMarotoGenerator().GenerateKardexPDF(context.Background(), data)
	assertPDF(t, out, err)
}

func TestGenerateInventoryPDF(t *testing.T) {
	data := report.InventoryReportData{
		Company: testCompany,
		Rows: []report.InventoryReportRow{
			{SKU: "SKU-1", ProductName: "Tornillo", WarehouseName: "Norte", Quantity: 3, MinStock: 5, LowStock: true},
			{SKU: "SKU-1", ProductName: "Tornillo", WarehouseName: "Principal", Quantity: 50, MinStock: 10},
		},
		Truncated:   true,
		GeneratedAt: testNow,
	}

	out, err := NewMarotoGenerator().GenerateInventoryPDF(context.Background(), data)
	assertPDF(t, out, err)

	out, err = NewMarotoGenerator().GenerateInventoryPDF(context.Background(), report.InventoryReportData{
		Company: testCompany, Warehouse: &entity.Warehouse{Code: "B1", Name: "Principal"}, GeneratedAt: testNow,
	})
	assertPDF(t, out, err)
}

func TestGenerateMovementsPDF(t *testing.T) {
	data := report.MovementsReportData{
		Company: testCompany,
		Rows: []report.MovementReportRow{
			{CreatedAt: testNow, Type: entity.MovementTypeTRANSFER, Product: "SKU-1 - Tornillo", Quantity: 4, From: "Principal", To: "Norte", CreatedBy: "u1"},
			{CreatedAt: testNow, Type: entity.MovementTypeIN, Product: "SKU-1 - Tornillo", Quantity: 10, To: "Principal", CreatedBy: "u1"},
		},
		GeneratedAt: testNow,
	}

	out, err := NewMarotoGenerator().GenerateMovementsPDF(context.Background(), data)
	assertPDF(t, out, err)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"999.5", "999,50"},
		{"25000", "25.000,00"},
		{"1234567.891", "1.234.567,89"},
		{"-1500", "-1.500,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}
