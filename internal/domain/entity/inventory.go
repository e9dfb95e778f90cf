package entity

import "time"

// Inventory es el saldo actual de un producto en una bodega: una fila por
// (empresa, producto, bodega). Se crea en el primer movimiento y nunca se borra.
// Quantity >= 0 después de cualquier operación confirmada.
type Inventory struct {
	ID           string
	CompanyID    string
	ProductID    string
	WarehouseID  string
	Quantity     int64
	MinStock     int64
	MaxStock     *int64 // nil = sin tope
	Location     string // ubicación dentro de la bodega
	LastMovement *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el saldo está en o bajo el stock mínimo.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// IsOverStock indica si el saldo alcanza o supera el stock máximo (si está definido).
func (i *Inventory) IsOverStock() bool {
	return i.MaxStock != nil && i.Quantity >= *i.MaxStock
}

// Touch estampa el último movimiento.
func (i *Inventory) Touch(now time.Time) {
	i.LastMovement = &now
	i.UpdatedAt = now
}

// WarehouseStock total de unidades por bodega (resumen del dashboard).
type WarehouseStock struct {
	WarehouseID   string
	WarehouseName string
	Total         int64
}
