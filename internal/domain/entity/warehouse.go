package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// Code es único global; Name es único por empresa.
type Warehouse struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Location    string
	Description string
	IsActive    bool
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (w *Warehouse) SoftDelete(now time.Time) {
	w.IsDeleted = true
	w.IsActive = false
	w.DeletedAt = &now
	w.UpdatedAt = now
}

func (w *Warehouse) Restore(now time.Time) {
	w.IsDeleted = false
	w.IsActive = true
	w.DeletedAt = nil
	w.UpdatedAt = now
}
