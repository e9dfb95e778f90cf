package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del kardex (reglas de negocio del motor de inventario).
// Ninguno es fatal: son rechazos esperados; solo ErrLockContention admite reintento.
var (
	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor a 0")
	ErrNoInventory          = errors.New("no hay inventario del producto en la bodega")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrSameWarehouse        = errors.New("la bodega origen y destino deben ser diferentes")
	ErrNoOpAdjustment       = errors.New("la cantidad nueva es igual a la actual, no se requiere ajuste")
	ErrCrossTenantReference = errors.New("el recurso pertenece a otra empresa")
	ErrProtectedDeletion    = errors.New("no se puede eliminar: existe inventario positivo")
	ErrLockContention       = errors.New("inventario bloqueado por otra operación, intente de nuevo")
)

// StockError detalla un rechazo por stock insuficiente (disponible vs. solicitado).
// errors.Is(err, ErrInsufficientStock) es verdadero para cualquier *StockError.
type StockError struct {
	ProductID   string
	WarehouseID string
	Available   int64
	Requested   int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Disponible: %d, Solicitado: %d", e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// LedgerError envuelve un error de dominio con el recurso afectado.
type LedgerError struct {
	Kind     error
	Resource string // product, warehouse, inventory
	ID       string
}

func (e *LedgerError) Error() string {
	if e.ID == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s (%s %s)", e.Kind.Error(), e.Resource, e.ID)
}

func (e *LedgerError) Unwrap() error { return e.Kind }

// Wrap construye un LedgerError para kind sobre el recurso indicado.
func Wrap(kind error, resource, id string) error {
	return &LedgerError{Kind: kind, Resource: resource, ID: id}
}

// IsRetryable indica si el caller puede reintentar la operación.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockContention)
}
