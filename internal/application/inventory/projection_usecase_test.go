package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

func newProjection(f *fixture) *inventory.ProjectionUseCase {
	return inventory.NewProjectionUseCase(f.inventory, f.movements, f.kardex, f.products, f.warehouses)
}

func TestProjection_TotalAndByWarehouse(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 8, "100")
	f.entry(t, f.w2.ID, 3, "100")
	p := newProjection(f)

	total, err := p.TotalStock(context.Background(), testCompanyID, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total.Total)

	byWH, err := p.StockByWarehouse(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, byWH, 2)
	assert.Equal(t, f.w1.ID, byWH[0].WarehouseID, "orden descendente por total")
	assert.Equal(t, "Bodega W1", byWH[0].WarehouseName)

	_, err = p.TotalStock(context.Background(), otherCompany, f.product.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)
}

func TestProjection_LowStockAndReplenishment(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 2, "100")
	f.entry(t, f.w2.ID, 30, "100")
	maxStock := int64(12)
	_, err := f.ledger.UpdateStockLimits(context.Background(), inventory.LimitsInput{
		Actor: f.actor, ProductID: f.product.ID, WarehouseID: f.w1.ID, MinStock: 5, MaxStock: &maxStock,
	})
	require.NoError(t, err)
	_, err = f.ledger.UpdateStockLimits(context.Background(), inventory.LimitsInput{
		Actor: f.actor, ProductID: f.product.ID, WarehouseID: f.w2.ID, MinStock: 5,
	})
	require.NoError(t, err)
	p := newProjection(f)

	low, err := p.LowStock(context.Background(), testCompanyID, "")
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, f.w1.ID, low[0].WarehouseID)
	assert.True(t, low[0].IsLowStock)

	list, err := p.ReplenishmentList(context.Background(), testCompanyID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(12), list[0].TargetStock)
	assert.Equal(t, int64(10), list[0].SuggestedOrderQty)
	assert.Equal(t, "1000", list[0].EstimatedOrderCost.String())
	assert.Equal(t, 1, list[0].Priority)
}

func TestProjection_KardexHistoryIsChronological(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 5, "100")
	f.entry(t, f.w1.ID, 5, "100")
	p := newProjection(f)

	hist, err := p.KardexHistory(context.Background(), testCompanyID, f.product.ID, f.w1.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)
	assert.Less(t, hist.Items[0].Seq, hist.Items[1].Seq)
	assert.Equal(t, int64(10), hist.Items[1].BalanceQuantity)
	assert.Equal(t, 20, hist.Page.Limit)
}

func TestProjection_DashboardSummary(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 5, "100")
	f.entry(t, f.w2.ID, 7, "100")
	p := newProjection(f)

	sum, err := p.DashboardSummary(context.Background(), testCompanyID)

	require.NoError(t, err)
	assert.Equal(t, int64(12), sum.TotalUnits)
	assert.Len(t, sum.TopWarehouses, 2)
	assert.Len(t, sum.RecentMovements, 2)
	assert.Zero(t, sum.LowStockCount, "min_stock 0: un saldo positivo no es bajo")
}

func TestProjection_ListMovementsFilters(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 10, "100")
	f.entry(t, f.w2.ID, 4, "100")
	_, err := f.ledger.CreateTransfer(context.Background(), inventory.TransferInput{
		Actor: f.actor, ProductID: f.product.ID, FromWarehouseID: f.w1.ID, ToWarehouseID: f.w2.ID, Quantity: 3,
	})
	require.NoError(t, err)
	p := newProjection(f)

	all, err := p.ListMovements(context.Background(), testCompanyID, dto.MovementFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, entity.MovementTypeTRANSFER, all.Items[0].Type, "el más reciente primero")

	entries, err := p.ListMovements(context.Background(), testCompanyID, dto.MovementFilterRequest{Type: entity.MovementTypeIN}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, entries.Items, 2)

	// La bodega coincide por origen o por destino.
	byW1, err := p.ListMovements(context.Background(), testCompanyID, dto.MovementFilterRequest{WarehouseID: f.w1.ID}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, byW1.Items, 2)

	paged, err := p.ListMovements(context.Background(), testCompanyID, dto.MovementFilterRequest{}, dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged.Items, 1)
	assert.Equal(t, all.Items[1].ID, paged.Items[0].ID)

	foreign, err := p.ListMovements(context.Background(), otherCompany, dto.MovementFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, foreign.Items)
}

func TestProjection_GetMovementDetail(t *testing.T) {
	f := newFixture(t)
	f.entry(t, f.w1.ID, 10, "100")
	res, err := f.ledger.CreateTransfer(context.Background(), inventory.TransferInput{
		Actor: f.actor, ProductID: f.product.ID, FromWarehouseID: f.w1.ID, ToWarehouseID: f.w2.ID, Quantity: 3,
	})
	require.NoError(t, err)
	p := newProjection(f)

	detail, err := p.GetMovement(context.Background(), testCompanyID, res.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Movement.ID, detail.ID)
	assert.Equal(t, "SKU-1", detail.ProductSKU)
	assert.Equal(t, "Bodega W1", detail.WarehouseFromName)
	assert.Equal(t, "Bodega W2", detail.WarehouseToName)
	require.Len(t, detail.Kardex, 2)
	assert.Equal(t, int64(3), detail.Kardex[0].OutputQuantity)
	assert.Equal(t, int64(3), detail.Kardex[1].InputQuantity)

	_, err = p.GetMovement(context.Background(), otherCompany, res.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra empresa no ve el movimiento")
	_, err = p.GetMovement(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
