package dto

import "time"

// SupplierRequest body para crear (POST) o reemplazar (PUT) un proveedor.
type SupplierRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Identification string `json:"identification" validate:"required,min=1,max=50"`
	ContactName    string `json:"contact_name" validate:"max=200"`
	Phone          string `json:"phone" validate:"omitempty,phone"`
	Email          string `json:"email" validate:"omitempty,email,max=254"`
	Address        string `json:"address" validate:"max=500"`
	City           string `json:"city" validate:"max=100"`
	Country        string `json:"country" validate:"max=100"`
	Website        string `json:"website" validate:"omitempty,url,max=200"`
	Notes          string `json:"notes" validate:"max=1000"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Identification string     `json:"identification"`
	ContactName    string     `json:"contact_name,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	Country        string     `json:"country"`
	Website        string     `json:"website,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	IsActive       bool       `json:"is_active"`
	IsDeleted      bool       `json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
