package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeTRANSFER = "TRANSFER" // traslado entre bodegas
	MovementTypeADJUST   = "ADJUST"   // ajuste (conteo físico)
)

// Estados de movimiento. El kardex solo produce COMPLETED (procesamiento síncrono).
const (
	MovementStatusPending   = "PENDING"
	MovementStatusCompleted = "COMPLETED"
	MovementStatusCancelled = "CANCELLED"
)

// Movement es un hecho inmutable (append-only). Las correcciones se hacen con
// un movimiento compensatorio, nunca editando el historial.
// IN/OUT llevan una sola bodega; TRANSFER lleva ambas y distintas.
type Movement struct {
	ID              string
	CompanyID       string
	Type            string
	Status          string
	ProductID       string
	Quantity        int64  // siempre > 0
	WarehouseFromID string // vacío = sin bodega origen
	WarehouseToID   string // vacío = sin bodega destino
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal // UnitCost * Quantity
	Reference       string
	Notes           string
	CreatedBy       string
	ProcessedAt     time.Time
	CreatedAt       time.Time
}
