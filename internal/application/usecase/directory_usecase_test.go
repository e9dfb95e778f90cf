package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/memory"
)

var actor = inventory.Actor{UserID: "user-1", CompanyID: "company-a"}

type deps struct {
	products   *usecase.ProductUseCase
	warehouses *usecase.WarehouseUseCase
	suppliers  *usecase.SupplierUseCase
	auditLog   *usecase.AuditUseCase
	ledger     *inventory.LedgerUseCase
	audit      *memory.AuditRepository
}

func newDeps() deps {
	store := memory.NewStore(time.Second)
	productRepo := memory.NewProductRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	txRunner := memory.NewTxRunner(store)
	audit := memory.NewAuditRepository(store)
	return deps{
		products:   usecase.NewProductUseCase(txRunner, productRepo, audit, nil),
		warehouses: usecase.NewWarehouseUseCase(txRunner, warehouseRepo, audit, nil),
		suppliers:  usecase.NewSupplierUseCase(memory.NewSupplierRepository(store), audit, nil),
		auditLog:   usecase.NewAuditUseCase(audit),
		ledger:     inventory.NewLedgerUseCase(txRunner, productRepo, warehouseRepo, audit, nil, nil),
		audit:      audit,
	}
}

func TestProductUseCase_CreateDuplicateSKU(t *testing.T) {
	d := newDeps()
	in := dto.CreateProductRequest{SKU: "A-1", Name: "Tornillo", CostPrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15)}

	p, err := d.products.Create(context.Background(), actor, in)
	require.NoError(t, err)
	assert.Equal(t, "50", p.Margin.String())

	_, err = d.products.Create(context.Background(), actor, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_SoftDeleteGuard(t *testing.T) {
	d := newDeps()
	ctx := context.Background()
	p, err := d.products.Create(ctx, actor, dto.CreateProductRequest{SKU: "A-1", Name: "Tornillo"})
	require.NoError(t, err)
	w, err := d.warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: "W1", Name: "Principal"})
	require.NoError(t, err)
	_, err = d.ledger.CreateEntry(ctx, inventory.EntryInput{Actor: actor, ProductID: p.ID, WarehouseID: w.ID, Quantity: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, d.products.SoftDelete(ctx, actor, p.ID), domain.ErrProtectedDeletion)
	assert.ErrorIs(t, d.warehouses.SoftDelete(ctx, actor, w.ID), domain.ErrProtectedDeletion)

	_, err = d.ledger.CreateExit(ctx, inventory.ExitInput{Actor: actor, ProductID: p.ID, WarehouseID: w.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, d.products.SoftDelete(ctx, actor, p.ID), "sin stock se puede eliminar")

	got, err := d.products.GetByID(ctx, actor, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)

	_, err = d.ledger.CreateEntry(ctx, inventory.EntryInput{Actor: actor, ProductID: p.ID, WarehouseID: w.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto eliminado no admite movimientos")

	restored, err := d.products.Restore(ctx, actor, p.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	var actions []string
	for _, ev := range d.audit.Events() {
		if ev.EntityType == "product" {
			actions = append(actions, ev.Action)
		}
	}
	assert.Equal(t, []string{entity.AuditActionCreate, entity.AuditActionDelete, entity.AuditActionRestore}, actions)
}

func TestDirectory_TenantIsolation(t *testing.T) {
	d := newDeps()
	ctx := context.Background()
	w, err := d.warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: "W1", Name: "Principal"})
	require.NoError(t, err)

	other := inventory.Actor{UserID: "user-2", CompanyID: "company-b"}
	_, err = d.warehouses.GetByID(ctx, other, w.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, d.warehouses.SoftDelete(ctx, other, w.ID), domain.ErrForbidden)
	assert.ErrorIs(t, d.warehouses.SoftDelete(ctx, actor, "no-existe"), domain.ErrNotFound)

	mine, err := d.warehouses.GetByID(ctx, actor, w.ID)
	require.NoError(t, err)
	assert.False(t, mine.IsDeleted, "el borrado rechazado no deja cambios")

	list, err := d.warehouses.List(ctx, other, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestSupplierUseCase_Lifecycle(t *testing.T) {
	d := newDeps()
	ctx := context.Background()

	acme, err := d.suppliers.Create(ctx, actor, dto.SupplierRequest{
		Name: " Acme Ltda ", Identification: "900123", Email: "Ventas@Acme.co",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", acme.Name)
	assert.Equal(t, "ventas@acme.co", acme.Email)
	assert.Equal(t, entity.DefaultSupplierCountry, acme.Country)

	_, err = d.suppliers.Create(ctx, actor, dto.SupplierRequest{Name: "Otra", Identification: "900123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "identificación repetida en la empresa")

	// La misma identificación en otra empresa es válida.
	other := inventory.Actor{UserID: "user-2", CompanyID: "company-b"}
	_, err = d.suppliers.Create(ctx, other, dto.SupplierRequest{Name: "Acme B", Identification: "900123"})
	require.NoError(t, err)

	_, err = d.suppliers.Create(ctx, actor, dto.SupplierRequest{Name: "Bodegas del Sur", Identification: "800555"})
	require.NoError(t, err)

	found, err := d.suppliers.List(ctx, actor, "acme", false, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, acme.ID, found.Items[0].ID)

	updated, err := d.suppliers.Update(ctx, actor, acme.ID, dto.SupplierRequest{
		Name: "Acme SAS", Identification: "900123", City: "Cali",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", updated.Name)
	assert.Equal(t, "Cali", updated.City)

	_, err = d.suppliers.Update(ctx, actor, acme.ID, dto.SupplierRequest{Name: "Acme", Identification: "800555"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, d.suppliers.SoftDelete(ctx, actor, acme.ID))
	active, err := d.suppliers.List(ctx, actor, "", false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)
	_, err = d.suppliers.Update(ctx, actor, acme.ID, dto.SupplierRequest{Name: "X", Identification: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un proveedor eliminado no se edita")

	restored, err := d.suppliers.Restore(ctx, actor, acme.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	_, err = d.suppliers.GetByID(ctx, other, acme.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuditUseCase_ListAndDetail(t *testing.T) {
	d := newDeps()
	ctx := context.Background()
	p, err := d.products.Create(ctx, actor, dto.CreateProductRequest{SKU: "A-1", Name: "Tornillo"})
	require.NoError(t, err)
	w, err := d.warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: "W1", Name: "Principal"})
	require.NoError(t, err)
	res, err := d.ledger.CreateEntry(ctx, inventory.EntryInput{Actor: actor, ProductID: p.ID, WarehouseID: w.ID, Quantity: 4})
	require.NoError(t, err)

	all, err := d.auditLog.List(ctx, actor, dto.AuditFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, entity.AuditActionMovementIn, all.Items[0].Action, "el más reciente primero")

	moves, err := d.auditLog.List(ctx, actor, dto.AuditFilterRequest{EntityType: "movement"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, moves.Items, 1)
	assert.Equal(t, res.Movement.ID, moves.Items[0].EntityID)

	creates, err := d.auditLog.List(ctx, actor, dto.AuditFilterRequest{Action: entity.AuditActionCreate}, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, creates.Items, 1)

	ev, err := d.auditLog.GetByID(ctx, actor, moves.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", ev.ActorID)

	other := inventory.Actor{UserID: "user-2", CompanyID: "company-b"}
	_, err = d.auditLog.GetByID(ctx, other, moves.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	foreign, err := d.auditLog.List(ctx, other, dto.AuditFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, foreign.Items)
}
