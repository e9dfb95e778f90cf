package entity

import "time"

// Supplier proveedor de la empresa. Identification (NIT o RUT) es única por empresa.
type Supplier struct {
	ID             string
	CompanyID      string
	Name           string
	Identification string
	ContactName    string
	Phone          string
	Email          string
	Address        string
	City           string
	Country        string
	Website        string
	Notes          string
	IsActive       bool
	IsDeleted      bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultSupplierCountry país cuando no se informa.
const DefaultSupplierCountry = "Colombia"

func (s *Supplier) SoftDelete(now time.Time) {
	s.IsDeleted = true
	s.IsActive = false
	s.DeletedAt = &now
	s.UpdatedAt = now
}

func (s *Supplier) Restore(now time.Time) {
	s.IsDeleted = false
	s.IsActive = true
	s.DeletedAt = nil
	s.UpdatedAt = now
}
