package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock no vive aquí: se maneja por bodega en Inventory.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	CostPrice   decimal.Decimal // precio de costo (>= 0); usado en traslados y ajustes
	SalePrice   decimal.Decimal // precio de venta (>= 0)
	IsActive    bool
	IsDeleted   bool // borrado lógico
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Margin devuelve el margen porcentual sobre costo ((venta - costo) / costo * 100).
func (p *Product) Margin() decimal.Decimal {
	if !p.CostPrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).Div(p.CostPrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// SoftDelete marca el producto como eliminado. El guard de inventario positivo
// lo aplica el caso de uso antes de llamar aquí.
func (p *Product) SoftDelete(now time.Time) {
	p.IsDeleted = true
	p.IsActive = false
	p.DeletedAt = &now
	p.UpdatedAt = now
}

// Restore revierte un borrado lógico.
func (p *Product) Restore(now time.Time) {
	p.IsDeleted = false
	p.IsActive = true
	p.DeletedAt = nil
	p.UpdatedAt = now
}
