package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// MovementHandler consultas del historial de movimientos (solo lectura).
type MovementHandler struct {
	responder
	projection *inventory.ProjectionUseCase
}

func NewMovementHandler(projection *inventory.ProjectionUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{responder: newResponder(log), projection: projection}
}

// List godoc
// @Summary      Listar movimientos
// @Description  Del más reciente al más antiguo. warehouse_id coincide con origen o destino.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "IN, OUT, TRANSFER o ADJUST"
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega de origen o destino"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var filter dto.MovementFilterRequest
	if ok, err := bindQuery(c, &filter); !ok {
		return err
	}
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.projection.ListMovements(c.UserContext(), GetCompanyID(c), filter, page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un movimiento
// @Description  Incluye nombres de producto y bodegas y las entradas de kardex que generó.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.projection.GetMovement(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
