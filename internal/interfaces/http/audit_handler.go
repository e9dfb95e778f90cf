package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// AuditHandler consulta del registro de auditoría (solo admin).
type AuditHandler struct {
	responder
	uc *usecase.AuditUseCase
}

func NewAuditHandler(uc *usecase.AuditUseCase, log *logger.Logger) *AuditHandler {
	return &AuditHandler{responder: newResponder(log), uc: uc}
}

// List godoc
// @Summary      Listar eventos de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action       query  string  false  "CREATE, UPDATE, DELETE, RESTORE, ..."
// @Param        entity_type  query  string  false  "product, warehouse, supplier, ..."
// @Param        entity_id    query  string  false  "ID de la entidad"
// @Param        actor_id     query  string  false  "Usuario que ejecutó la acción"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var filter dto.AuditFilterRequest
	if ok, err := bindQuery(c, &filter); !ok {
		return err
	}
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actorFrom(c), filter, page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un evento de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.AuditEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audit/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
