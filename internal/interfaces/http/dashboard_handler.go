package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	responder
	projection *inventory.ProjectionUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(projection *inventory.ProjectionUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{responder: newResponder(log), projection: projection}
}

// GetSummary godoc
// @Summary      Resumen de inventario
// @Description  Unidades totales, filas en stock bajo, bodegas con más unidades y últimos movimientos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.projection.DashboardSummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(summary)
}
