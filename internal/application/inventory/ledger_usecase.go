package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// Actor identidad explícita de quien ejecuta la operación (usuario y empresa del token).
type Actor struct {
	UserID    string
	CompanyID string
}

func (a Actor) validate() error {
	if a.UserID == "" || a.CompanyID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// EntryInput entrada para CreateEntry.
type EntryInput struct {
	Actor       Actor
	ProductID   string
	WarehouseID string
	Quantity    int64
	UnitCost    decimal.Decimal
	Reference   string
	Notes       string
}

// ExitInput entrada para CreateExit.
type ExitInput = EntryInput

// TransferInput entrada para CreateTransfer. El costo unitario sale del producto.
type TransferInput struct {
	Actor           Actor
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Reference       string
	Notes           string
}

// AdjustmentInput entrada para CreateAdjustment: NewQuantity es el conteo físico.
type AdjustmentInput struct {
	Actor       Actor
	ProductID   string
	WarehouseID string
	NewQuantity int64
	Reason      string
}

// LimitsInput entrada para UpdateStockLimits.
type LimitsInput struct {
	Actor       Actor
	ProductID   string
	WarehouseID string
	MinStock    int64
	MaxStock    *int64
	Location    string
}

// LedgerResult lo que produce una operación confirmada: el movimiento,
// los saldos resultantes y las entradas de kardex (una por bodega afectada).
type LedgerResult struct {
	Movement    *entity.Movement
	Inventories []*entity.Inventory
	Kardex      []*entity.KardexEntry
}

// LedgerUseCase motor del kardex: entradas, salidas, traslados y ajustes.
// Cada operación sigue la misma forma: bloquear fila(s) → validar → mutar saldo →
// agregar historial, todo en una sola transacción (SELECT FOR UPDATE + Commit/Rollback).
type LedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	audit         AuditSink
	metrics       LedgerMetrics
	log           *logger.Logger
	now           func() time.Time
}

// NewLedgerUseCase construye el caso de uso. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	audit AuditSink,
	metrics LedgerMetrics,
	log *logger.Logger,
) *LedgerUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		audit:         audit,
		metrics:       metrics,
		log:           log,
		now:           time.Now,
	}
}

// CreateEntry registra una entrada (IN): crea la fila de inventario si no existe,
// suma la cantidad y agrega un movimiento y una entrada de kardex.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, in EntryInput) (*LedgerResult, error) {
	if err := in.Actor.validate(); err != nil {
		return nil, err
	}
	if !inventory.ValidQuantity(in.Quantity) {
		return nil, uc.reject(entity.MovementTypeIN, domain.ErrInvalidQuantity)
	}
	if in.UnitCost.IsNegative() {
		return nil, uc.reject(entity.MovementTypeIN, domain.ErrInvalidInput)
	}
	product, warehouse, err := uc.resolve(ctx, in.Actor, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, uc.reject(entity.MovementTypeIN, err)
	}

	now := uc.now()
	var (
		result *LedgerResult
		before int64
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		if err := recheck(ctx, repos, product.ID, warehouse.ID); err != nil {
			return err
		}
		key := keyFor(in.Actor, product.ID, warehouse.ID)
		inv, err := repos.Inventory.LockOrCreate(ctx, key)
		if err != nil {
			return err
		}
		next, err := inventory.AddQuantity(inv.Quantity, in.Quantity)
		if err != nil {
			return domain.Wrap(domain.ErrInvalidQuantity, "warehouse", warehouse.ID)
		}
		prev, err := repos.Kardex.Latest(ctx, key.CompanyID, key.ProductID, key.WarehouseID)
		if err != nil {
			return err
		}
		before = inv.Quantity
		inv.Quantity = next
		inv.Touch(now)
		if err := repos.Inventory.Save(ctx, inv); err != nil {
			return err
		}

		mov := newMovement(in.Actor, entity.MovementTypeIN, product.ID, in.Quantity, in.UnitCost, in.Reference, in.Notes, now)
		mov.WarehouseToID = warehouse.ID
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		val := inventory.ValueInflow(before, averageOf(prev), in.Quantity, in.UnitCost)
		k := newKardexEntry(mov, warehouse.ID, in.Quantity, 0, inv.Quantity, val, in.Notes)
		if err := repos.Kardex.Create(ctx, k); err != nil {
			return err
		}
		result = &LedgerResult{Movement: mov, Inventories: []*entity.Inventory{inv}, Kardex: []*entity.KardexEntry{k}}
		return nil
	})
	if err != nil {
		return nil, uc.reject(entity.MovementTypeIN, err)
	}

	uc.committed(ctx, in.Actor, entity.AuditActionMovementIn, product, result,
		map[string]int64{warehouse.ID: before})
	return result, nil
}

// CreateExit registra una salida (OUT). La validación de stock y el descuento
// ocurren bajo el mismo bloqueo: ninguna salida concurrente puede dejar saldo negativo.
func (uc *LedgerUseCase) CreateExit(ctx context.Context, in ExitInput) (*LedgerResult, error) {
	if err := in.Actor.validate(); err != nil {
		return nil, err
	}
	if !inventory.ValidQuantity(in.Quantity) {
		return nil, uc.reject(entity.MovementTypeOUT, domain.ErrInvalidQuantity)
	}
	if in.UnitCost.IsNegative() {
		return nil, uc.reject(entity.MovementTypeOUT, domain.ErrInvalidInput)
	}
	product, warehouse, err := uc.resolve(ctx, in.Actor, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, uc.reject(entity.MovementTypeOUT, err)
	}

	now := uc.now()
	var (
		result *LedgerResult
		before int64
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		if err := recheck(ctx, repos, product.ID, warehouse.ID); err != nil {
			return err
		}
		key := keyFor(in.Actor, product.ID, warehouse.ID)
		inv, err := repos.Inventory.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.Wrap(domain.ErrNoInventory, "warehouse", warehouse.ID)
		}
		if in.Quantity > inv.Quantity {
			return &domain.StockError{
				ProductID: product.ID, WarehouseID: warehouse.ID,
				Available: inv.Quantity, Requested: in.Quantity,
			}
		}
		prev, err := repos.Kardex.Latest(ctx, key.CompanyID, key.ProductID, key.WarehouseID)
		if err != nil {
			return err
		}
		before = inv.Quantity
		inv.Quantity -= in.Quantity
		inv.Touch(now)
		if err := repos.Inventory.Save(ctx, inv); err != nil {
			return err
		}

		mov := newMovement(in.Actor, entity.MovementTypeOUT, product.ID, in.Quantity, in.UnitCost, in.Reference, in.Notes, now)
		mov.WarehouseFromID = warehouse.ID
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		val := inventory.ValueOutflow(inv.Quantity, averageOf(prev))
		k := newKardexEntry(mov, warehouse.ID, 0, in.Quantity, inv.Quantity, val, in.Notes)
		if err := repos.Kardex.Create(ctx, k); err != nil {
			return err
		}
		result = &LedgerResult{Movement: mov, Inventories: []*entity.Inventory{inv}, Kardex: []*entity.KardexEntry{k}}
		return nil
	})
	if err != nil {
		return nil, uc.reject(entity.MovementTypeOUT, err)
	}

	uc.committed(ctx, in.Actor, entity.AuditActionMovementOut, product, result,
		map[string]int64{warehouse.ID: before})
	return result, nil
}

// CreateTransfer traslada unidades entre dos bodegas de la misma empresa.
// Bloquea ambas filas en orden de ID de bodega (ver inventory.LockOrder), resta en
// origen, suma en destino y genera un movimiento con dos entradas de kardex.
func (uc *LedgerUseCase) CreateTransfer(ctx context.Context, in TransferInput) (*LedgerResult, error) {
	if err := in.Actor.validate(); err != nil {
		return nil, err
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, uc.reject(entity.MovementTypeTRANSFER, domain.ErrSameWarehouse)
	}
	if !inventory.ValidQuantity(in.Quantity) {
		return nil, uc.reject(entity.MovementTypeTRANSFER, domain.ErrInvalidQuantity)
	}
	product, from, err := uc.resolve(ctx, in.Actor, in.ProductID, in.FromWarehouseID)
	if err != nil {
		return nil, uc.reject(entity.MovementTypeTRANSFER, err)
	}
	to, err := uc.resolveWarehouse(ctx, in.Actor, in.ToWarehouseID)
	if err != nil {
		return nil, uc.reject(entity.MovementTypeTRANSFER, err)
	}

	now := uc.now()
	unitCost := product.CostPrice
	var (
		result               *LedgerResult
		beforeFrom, beforeTo int64
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		first, second := inventory.LockOrder(from.ID, to.ID)
		if err := recheck(ctx, repos, product.ID, first, second); err != nil {
			return err
		}
		locked := make(map[string]*entity.Inventory, 2)
		for _, whID := range []string{first, second} {
			key := keyFor(in.Actor, product.ID, whID)
			var (
				inv *entity.Inventory
				err error
			)
			if whID == from.ID {
				inv, err = repos.Inventory.GetForUpdate(ctx, key)
				if err == nil && inv == nil {
					err = domain.Wrap(domain.ErrNoInventory, "warehouse", from.ID)
				}
			} else {
				inv, err = repos.Inventory.LockOrCreate(ctx, key)
			}
			if err != nil {
				return err
			}
			locked[whID] = inv
		}
		src, dst := locked[from.ID], locked[to.ID]
		if in.Quantity > src.Quantity {
			return &domain.StockError{
				ProductID: product.ID, WarehouseID: from.ID,
				Available: src.Quantity, Requested: in.Quantity,
			}
		}
		nextDst, err := inventory.AddQuantity(dst.Quantity, in.Quantity)
		if err != nil {
			return domain.Wrap(domain.ErrInvalidQuantity, "warehouse", to.ID)
		}
		prevSrc, err := repos.Kardex.Latest(ctx, in.Actor.CompanyID, product.ID, from.ID)
		if err != nil {
			return err
		}
		prevDst, err := repos.Kardex.Latest(ctx, in.Actor.CompanyID, product.ID, to.ID)
		if err != nil {
			return err
		}

		beforeFrom, beforeTo = src.Quantity, dst.Quantity
		src.Quantity -= in.Quantity
		dst.Quantity = nextDst
		src.Touch(now)
		dst.Touch(now)
		if err := repos.Inventory.Save(ctx, src); err != nil {
			return err
		}
		if err := repos.Inventory.Save(ctx, dst); err != nil {
			return err
		}

		mov := newMovement(in.Actor, entity.MovementTypeTRANSFER, product.ID, in.Quantity, unitCost, in.Reference, in.Notes, now)
		mov.WarehouseFromID = from.ID
		mov.WarehouseToID = to.ID
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		outEntry := newKardexEntry(mov, from.ID, 0, in.Quantity, src.Quantity,
			inventory.ValueOutflow(src.Quantity, averageOf(prevSrc)),
			fmt.Sprintf("Transferencia a %s: %s", to.Name, in.Notes))
		if err := repos.Kardex.Create(ctx, outEntry); err != nil {
			return err
		}
		inEntry := newKardexEntry(mov, to.ID, in.Quantity, 0, dst.Quantity,
			inventory.ValueInflow(beforeTo, averageOf(prevDst), in.Quantity, unitCost),
			fmt.Sprintf("Transferencia desde %s: %s", from.Name, in.Notes))
		if err := repos.Kardex.Create(ctx, inEntry); err != nil {
			return err
		}

		result = &LedgerResult{
			Movement:    mov,
			Inventories: []*entity.Inventory{src, dst},
			Kardex:      []*entity.KardexEntry{outEntry, inEntry},
		}
		return nil
	})
	if err != nil {
		return nil, uc.reject(entity.MovementTypeTRANSFER, err)
	}

	uc.committed(ctx, in.Actor, entity.AuditActionMovementTransfer, product, result,
		map[string]int64{from.ID: beforeFrom, to.ID: beforeTo})
	return result, nil
}

// CreateAdjustment fija el saldo al conteo físico (NewQuantity). Es la única
// operación que sobrescribe la cantidad directamente; el movimiento registra |diferencia|.
func (uc *LedgerUseCase) CreateAdjustment(ctx context.Context, in AdjustmentInput) (*LedgerResult, error) {
	if err := in.Actor.validate(); err != nil {
		return nil, err
	}
	if in.NewQuantity < 0 || in.NewQuantity > inventory.MaxQuantity {
		return nil, uc.reject(entity.MovementTypeADJUST, domain.ErrInvalidQuantity)
	}
	product, warehouse, err := uc.resolve(ctx, in.Actor, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, uc.reject(entity.MovementTypeADJUST, err)
	}

	now := uc.now()
	unitCost := product.CostPrice
	var (
		result *LedgerResult
		before int64
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		if err := recheck(ctx, repos, product.ID, warehouse.ID); err != nil {
			return err
		}
		key := keyFor(in.Actor, product.ID, warehouse.ID)
		inv, err := repos.Inventory.LockOrCreate(ctx, key)
		if err != nil {
			return err
		}
		before = inv.Quantity
		diff := in.NewQuantity - before
		if diff == 0 {
			return domain.ErrNoOpAdjustment
		}
		prev, err := repos.Kardex.Latest(ctx, key.CompanyID, key.ProductID, key.WarehouseID)
		if err != nil {
			return err
		}

		inv.Quantity = in.NewQuantity
		inv.Touch(now)
		if err := repos.Inventory.Save(ctx, inv); err != nil {
			return err
		}

		qty := abs(diff)
		notes := fmt.Sprintf("Ajuste: %s. Anterior: %d, Nuevo: %d", in.Reason, before, in.NewQuantity)
		mov := newMovement(in.Actor, entity.MovementTypeADJUST, product.ID, qty, unitCost, "Ajuste de inventario", notes, now)
		var (
			inQty, outQty int64
			val           inventory.Valuation
		)
		if diff > 0 {
			mov.WarehouseToID = warehouse.ID
			inQty = qty
			val = inventory.ValueInflow(before, averageOf(prev), qty, unitCost)
		} else {
			mov.WarehouseFromID = warehouse.ID
			outQty = qty
			val = inventory.ValueOutflow(in.NewQuantity, averageOf(prev))
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}

		k := newKardexEntry(mov, warehouse.ID, inQty, outQty, in.NewQuantity, val,
			fmt.Sprintf("Ajuste: %s. Diferencia: %+d", in.Reason, diff))
		k.Reference = "Ajuste"
		if err := repos.Kardex.Create(ctx, k); err != nil {
			return err
		}
		result = &LedgerResult{Movement: mov, Inventories: []*entity.Inventory{inv}, Kardex: []*entity.KardexEntry{k}}
		return nil
	})
	if err != nil {
		return nil, uc.reject(entity.MovementTypeADJUST, err)
	}

	uc.committed(ctx, in.Actor, entity.AuditActionMovementAdjust, product, result,
		map[string]int64{warehouse.ID: before})
	return result, nil
}

// UpdateStockLimits actualiza stock mínimo/máximo y ubicación de la fila de inventario.
// Nunca toca la cantidad, por lo que no genera movimiento ni kardex.
func (uc *LedgerUseCase) UpdateStockLimits(ctx context.Context, in LimitsInput) (*entity.Inventory, error) {
	if err := in.Actor.validate(); err != nil {
		return nil, err
	}
	if in.MinStock < 0 || in.MinStock > inventory.MaxQuantity ||
		(in.MaxStock != nil && (*in.MaxStock < in.MinStock || *in.MaxStock > inventory.MaxQuantity)) {
		return nil, domain.ErrInvalidInput
	}
	product, warehouse, err := uc.resolve(ctx, in.Actor, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}

	var (
		updated *entity.Inventory
		before  map[string]any
	)
	err = uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		if err := recheck(ctx, repos, product.ID, warehouse.ID); err != nil {
			return err
		}
		inv, err := repos.Inventory.LockOrCreate(ctx, keyFor(in.Actor, product.ID, warehouse.ID))
		if err != nil {
			return err
		}
		before = limitsSnapshot(inv)
		inv.MinStock = in.MinStock
		inv.MaxStock = in.MaxStock
		inv.Location = in.Location
		inv.UpdatedAt = uc.now()
		if err := repos.Inventory.Save(ctx, inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, entity.AuditEvent{
		CompanyID:  in.Actor.CompanyID,
		ActorID:    in.Actor.UserID,
		Action:     entity.AuditActionLimitsUpdate,
		EntityType: "inventory",
		EntityID:   updated.ID,
		Before:     before,
		After:      limitsSnapshot(updated),
	})
	return updated, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// resolve valida que producto y bodega existan, no estén eliminados y sean de la empresa del actor.
func (uc *LedgerUseCase) resolve(ctx context.Context, actor Actor, productID, warehouseID string) (*entity.Product, *entity.Warehouse, error) {
	if productID == "" || warehouseID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil || product.IsDeleted {
		return nil, nil, domain.Wrap(domain.ErrNotFound, "product", productID)
	}
	if product.CompanyID != actor.CompanyID {
		return nil, nil, domain.Wrap(domain.ErrCrossTenantReference, "product", productID)
	}
	warehouse, err := uc.resolveWarehouse(ctx, actor, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	return product, warehouse, nil
}

func (uc *LedgerUseCase) resolveWarehouse(ctx context.Context, actor Actor, warehouseID string) (*entity.Warehouse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("obtener bodega: %w", err)
	}
	if warehouse == nil || warehouse.IsDeleted {
		return nil, domain.Wrap(domain.ErrNotFound, "warehouse", warehouseID)
	}
	if warehouse.CompanyID != actor.CompanyID {
		return nil, domain.Wrap(domain.ErrCrossTenantReference, "warehouse", warehouseID)
	}
	return warehouse, nil
}

// recheck relee producto y bodegas con bloqueo compartido dentro de la tx. Un borrado
// lógico concurrente espera a este commit o ya es visible aquí.
func recheck(ctx context.Context, repos TxRepositories, productID string, warehouseIDs ...string) error {
	product, err := repos.Products.GetForShare(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || product.IsDeleted {
		return domain.Wrap(domain.ErrNotFound, "product", productID)
	}
	for _, id := range warehouseIDs {
		warehouse, err := repos.Warehouses.GetForShare(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil || warehouse.IsDeleted {
			return domain.Wrap(domain.ErrNotFound, "warehouse", id)
		}
	}
	return nil
}

// reject cuenta el rechazo y deja rastro en el log; la contención se registra como warn.
func (uc *LedgerUseCase) reject(movementType string, err error) error {
	uc.metrics.MovementRejected(movementType, err)
	switch {
	case domain.IsRetryable(err):
		uc.log.Warn().Err(err).Str("type", movementType).Msg("kardex: contención de bloqueo")
	case isBusinessRejection(err):
		uc.log.Debug().Err(err).Str("type", movementType).Msg("kardex: movimiento rechazado")
	default:
		uc.log.Error().Err(err).Str("type", movementType).Msg("kardex: error registrando movimiento")
	}
	return err
}

// committed se ejecuta después del commit: métricas, log y entrega síncrona a auditoría.
func (uc *LedgerUseCase) committed(ctx context.Context, actor Actor, action string, product *entity.Product, res *LedgerResult, before map[string]int64) {
	mov := res.Movement
	uc.metrics.MovementRecorded(mov.Type)
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("type", mov.Type).
		Str("sku", product.SKU).
		Int64("quantity", mov.Quantity).
		Str("company_id", actor.CompanyID).
		Msg("kardex: movimiento registrado")

	after := make(map[string]int64, len(res.Inventories))
	for _, inv := range res.Inventories {
		after[inv.WarehouseID] = inv.Quantity
	}
	uc.record(ctx, entity.AuditEvent{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.UserID,
		Action:     action,
		EntityType: "movement",
		EntityID:   mov.ID,
		Before:     map[string]any{"balances": before},
		After: map[string]any{
			"balances":      after,
			"movement_type": mov.Type,
			"product_id":    mov.ProductID,
			"quantity":      mov.Quantity,
			"total_cost":    mov.TotalCost.String(),
		},
	})
}

// record entrega el evento al sink. Un fallo del sink no deshace la operación confirmada.
func (uc *LedgerUseCase) record(ctx context.Context, event entity.AuditEvent) {
	if uc.audit == nil {
		return
	}
	event.ID = uuid.New().String()
	event.OccurredAt = uc.now()
	if err := uc.audit.Record(ctx, event); err != nil {
		uc.log.Error().Err(err).
			Str("action", event.Action).
			Str("entity_id", event.EntityID).
			Msg("auditoría: no se pudo registrar el evento")
	}
}

func keyFor(actor Actor, productID, warehouseID string) repository.InventoryKey {
	return repository.InventoryKey{CompanyID: actor.CompanyID, ProductID: productID, WarehouseID: warehouseID}
}

func newMovement(actor Actor, movementType, productID string, qty int64, unitCost decimal.Decimal, reference, notes string, now time.Time) *entity.Movement {
	return &entity.Movement{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		Type:        movementType,
		Status:      entity.MovementStatusCompleted,
		ProductID:   productID,
		Quantity:    qty,
		UnitCost:    unitCost,
		TotalCost:   unitCost.Mul(decimal.NewFromInt(qty)),
		Reference:   reference,
		Notes:       notes,
		CreatedBy:   actor.UserID,
		ProcessedAt: now,
		CreatedAt:   now,
	}
}

func newKardexEntry(mov *entity.Movement, warehouseID string, inQty, outQty, balance int64, val inventory.Valuation, notes string) *entity.KardexEntry {
	return &entity.KardexEntry{
		ID:              uuid.New().String(),
		CompanyID:       mov.CompanyID,
		MovementID:      mov.ID,
		ProductID:       mov.ProductID,
		WarehouseID:     warehouseID,
		MovementType:    mov.Type,
		InputQuantity:   inQty,
		OutputQuantity:  outQty,
		BalanceQuantity: balance,
		InputValue:      mov.UnitCost.Mul(decimal.NewFromInt(inQty)),
		OutputValue:     mov.UnitCost.Mul(decimal.NewFromInt(outQty)),
		BalanceValue:    val.BalanceValue,
		UnitCost:        mov.UnitCost,
		AverageCost:     val.AverageCost,
		Reference:       mov.Reference,
		Notes:           notes,
		CreatedBy:       mov.CreatedBy,
		CreatedAt:       mov.CreatedAt,
	}
}

func averageOf(prev *entity.KardexEntry) decimal.Decimal {
	if prev == nil {
		return decimal.Zero
	}
	return prev.AverageCost
}

func limitsSnapshot(inv *entity.Inventory) map[string]any {
	snap := map[string]any{"min_stock": inv.MinStock, "location": inv.Location}
	if inv.MaxStock != nil {
		snap["max_stock"] = *inv.MaxStock
	}
	return snap
}

func isBusinessRejection(err error) bool {
	for _, kind := range []error{
		domain.ErrInvalidQuantity, domain.ErrInvalidInput, domain.ErrNoInventory,
		domain.ErrInsufficientStock, domain.ErrSameWarehouse, domain.ErrNoOpAdjustment,
		domain.ErrCrossTenantReference, domain.ErrNotFound,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
