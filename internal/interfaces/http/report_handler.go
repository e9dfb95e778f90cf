package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/report"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// ReportHandler descarga de reportes PDF.
type ReportHandler struct {
	responder
	uc *report.ReportUseCase
}

func NewReportHandler(uc *report.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{responder: newResponder(log), uc: uc}
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// KardexPDF godoc
// @Summary      Descargar kardex en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id    path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Bodega (vacío = todas)"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/kardex/{product_id} [get]
func (h *ReportHandler) KardexPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.KardexPDF(c.UserContext(), GetCompanyID(c), c.Params("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// InventoryPDF godoc
// @Summary      Descargar reporte de inventario en PDF
// @Description  Existencias positivas por producto y bodega, marcando las filas en bajo stock.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "Bodega (vacío = todas)"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.InventoryPDF(c.UserContext(), GetCompanyID(c), c.Query("warehouse_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// MovementsPDF godoc
// @Summary      Descargar reporte de movimientos en PDF
// @Description  Últimos 100 movimientos que cumplen el filtro.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        type          query  string  false  "IN, OUT, TRANSFER o ADJUST"
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega de origen o destino"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	var filter dto.MovementFilterRequest
	if ok, err := bindQuery(c, &filter); !ok {
		return err
	}
	pdfBytes, filename, err := h.uc.MovementsPDF(c.UserContext(), GetCompanyID(c), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendPDF(c, pdfBytes, filename)
}
