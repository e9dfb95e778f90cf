package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// retryAfterSeconds valor de Retry-After cuando el inventario está bloqueado.
const retryAfterSeconds = 1

// errorMapping traduce un error de dominio a status y código HTTP.
// El orden importa: los errores más específicos primero.
var errorMapping = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrNoInventory, fiber.StatusConflict, "NO_INVENTORY"},
	{domain.ErrProtectedDeletion, fiber.StatusConflict, "PROTECTED_DELETION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrSameWarehouse, fiber.StatusBadRequest, "SAME_WAREHOUSE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNoOpAdjustment, fiber.StatusUnprocessableEntity, "NOOP_ADJUSTMENT"},
	{domain.ErrCrossTenantReference, fiber.StatusForbidden, "CROSS_TENANT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrLockContention, fiber.StatusServiceUnavailable, "LOCK_CONTENTION"},
}

// responder traduce errores a respuestas; lo embeben todos los handlers.
type responder struct {
	log *logger.Logger
}

func newResponder(log *logger.Logger) responder {
	if log == nil {
		log = logger.Nop()
	}
	return responder{log: log.Component("http")}
}

// writeError responde con el ErrorResponse que corresponde a err.
// Solo los errores no mapeados (500) se registran.
func (r responder) writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if !errors.Is(err, m.kind) {
			continue
		}
		if m.status == fiber.StatusServiceUnavailable {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{
			Code:    m.code,
			Message: err.Error(),
			Details: errorDetails(err),
		})
	}
	r.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("company_id", GetCompanyID(c)).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func errorDetails(err error) map[string]any {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return map[string]any{
			"product_id":   stockErr.ProductID,
			"warehouse_id": stockErr.WarehouseID,
			"available":    stockErr.Available,
			"requested":    stockErr.Requested,
		}
	}
	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) && ledgerErr.ID != "" {
		return map[string]any{"resource": ledgerErr.Resource, "id": ledgerErr.ID}
	}
	return nil
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
