package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// InventoryHandler maneja los movimientos del kardex y las consultas de saldos (protegido).
type InventoryHandler struct {
	responder
	ledger        *inventory.LedgerUseCase
	projection    *inventory.ProjectionUseCase
	retryAttempts int
}

// NewInventoryHandler construye el handler. retryAttempts es el total de intentos
// ante contención de bloqueos (1 = sin reintentos).
func NewInventoryHandler(ledger *inventory.LedgerUseCase, projection *inventory.ProjectionUseCase, retryAttempts int, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{responder: newResponder(log), ledger: ledger, projection: projection, retryAttempts: retryAttempts}
}

// run ejecuta op reintentando solo ante ErrLockContention y responde 201 con el resultado.
func (h *InventoryHandler) run(c *fiber.Ctx, op func(ctx context.Context) (*inventory.LedgerResult, error)) error {
	ctx := c.UserContext()
	res, err := inventory.RetryOnContention(ctx, h.retryAttempts, func() (*inventory.LedgerResult, error) {
		return op(ctx)
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToLedgerResponse(res))
}

// CreateEntry godoc
// @Summary      Registrar entrada de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "product_id, warehouse_id, quantity, unit_cost"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	actor := actorFrom(c)
	return h.run(c, func(ctx context.Context) (*inventory.LedgerResult, error) {
		return h.ledger.CreateEntry(ctx, inventory.EntryInput{
			Actor:       actor,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			Reference:   in.Reference,
			Notes:       in.Notes,
		})
	})
}

// CreateExit godoc
// @Summary      Registrar salida de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitRequest  true  "product_id, warehouse_id, quantity"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "NO_INVENTORY o INSUFFICIENT_STOCK (details: available, requested)"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) CreateExit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	actor := actorFrom(c)
	return h.run(c, func(ctx context.Context) (*inventory.LedgerResult, error) {
		return h.ledger.CreateExit(ctx, inventory.ExitInput{
			Actor:       actor,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			Reference:   in.Reference,
			Notes:       in.Notes,
		})
	})
}

// CreateTransfer godoc
// @Summary      Trasladar stock entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	actor := actorFrom(c)
	return h.run(c, func(ctx context.Context) (*inventory.LedgerResult, error) {
		return h.ledger.CreateTransfer(ctx, inventory.TransferInput{
			Actor:           actor,
			ProductID:       in.ProductID,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Quantity:        in.Quantity,
			Reference:       in.Reference,
			Notes:           in.Notes,
		})
	})
}

// CreateAdjustment godoc
// @Summary      Ajustar stock a un conteo físico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, warehouse_id, new_quantity, reason"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "NOOP_ADJUSTMENT"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	actor := actorFrom(c)
	return h.run(c, func(ctx context.Context) (*inventory.LedgerResult, error) {
		return h.ledger.CreateAdjustment(ctx, inventory.AdjustmentInput{
			Actor:       actor,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			NewQuantity: in.NewQuantity,
			Reason:      in.Reason,
		})
	})
}

// UpdateStockLimits godoc
// @Summary      Actualizar stock mínimo/máximo y ubicación
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockLimitsRequest  true  "min_stock, max_stock, location"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/limits [put]
func (h *InventoryHandler) UpdateStockLimits(c *fiber.Ctx) error {
	var in dto.StockLimitsRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	ctx := c.UserContext()
	inv, err := inventory.RetryOnContention(ctx, h.retryAttempts, func() (*entity.Inventory, error) {
		return h.ledger.UpdateStockLimits(ctx, inventory.LimitsInput{
			Actor:       actorFrom(c),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			MinStock:    in.MinStock,
			MaxStock:    in.MaxStock,
			Location:    in.Location,
		})
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(inventory.ToInventoryResponse(inv))
}

// ListInventory godoc
// @Summary      Listar saldos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.projection.ListInventory(c.UserContext(), GetCompanyID(c), c.Query("warehouse_id"), page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o por debajo del stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.projection.LowStock(c.UserContext(), GetCompanyID(c), c.Query("warehouse_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// StockByWarehouse godoc
// @Summary      Total de unidades por bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseStockDTO
// @Router       /api/inventory/stock-by-warehouse [get]
func (h *InventoryHandler) StockByWarehouse(c *fiber.Ctx) error {
	out, err := h.projection.StockByWarehouse(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// KardexHistory godoc
// @Summary      Historial de kardex de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  false  "Bodega (vacío = todas)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.KardexListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex [get]
func (h *InventoryHandler) KardexHistory(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return badRequest(c, "MISSING_PRODUCT", "product_id es requerido")
	}
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.projection.KardexHistory(c.UserContext(), GetCompanyID(c), productID, c.Query("warehouse_id"), page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Filas en o por debajo del stock mínimo con la cantidad sugerida de pedido,
//
//	ordenadas por déficit y costo estimado.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.projection.ReplenishmentList(c.UserContext(), GetCompanyID(c), c.Query("warehouse_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// TotalStock godoc
// @Summary      Stock total de un producto en todas las bodegas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.TotalStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/total-stock [get]
func (h *InventoryHandler) TotalStock(c *fiber.Ctx) error {
	out, err := h.projection.TotalStock(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
