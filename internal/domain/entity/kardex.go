package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KardexEntry registro cronológico por movimiento y bodega afectada
// (un TRANSFER genera dos: salida en origen y entrada en destino).
// BalanceQuantity es el saldo de Inventory después de aplicar la entrada.
type KardexEntry struct {
	ID              string
	Seq             int64 // orden total de inserción; define "la más reciente"
	CompanyID       string
	MovementID      string
	ProductID       string
	WarehouseID     string
	MovementType    string
	InputQuantity   int64
	OutputQuantity  int64
	BalanceQuantity int64
	InputValue      decimal.Decimal
	OutputValue     decimal.Decimal
	BalanceValue    decimal.Decimal // BalanceQuantity * AverageCost
	UnitCost        decimal.Decimal // costo del movimiento
	AverageCost     decimal.Decimal // costo promedio ponderado del par producto/bodega
	Reference       string
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}
