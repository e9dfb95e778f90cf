package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest body para POST /api/inventory/entries y /exits.
// El signo de la cantidad lo valida el motor (INVALID_QUANTITY); aquí solo el tope.
type EntryRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"max=1000000000000"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reference   string          `json:"reference" validate:"max=100"`
	Notes       string          `json:"notes" validate:"max=500"`
}

// ExitRequest body para POST /api/inventory/exits.
type ExitRequest = EntryRequest

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID       string `json:"product_id" validate:"required"`
	FromWarehouseID string `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string `json:"to_warehouse_id" validate:"required"`
	Quantity        int64  `json:"quantity" validate:"max=1000000000000"`
	Reference       string `json:"reference" validate:"max=100"`
	Notes           string `json:"notes" validate:"max=500"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	NewQuantity int64  `json:"new_quantity" validate:"max=1000000000000"`
	Reason      string `json:"reason" validate:"required,max=500"`
}

// StockLimitsRequest body para PUT /api/inventory/limits.
type StockLimitsRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	MinStock    int64  `json:"min_stock" validate:"min=0,max=1000000000000"`
	MaxStock    *int64 `json:"max_stock,omitempty" validate:"omitempty,max=1000000000000"`
	Location    string `json:"location" validate:"max=100"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	WarehouseFromID string          `json:"warehouse_from_id,omitempty"`
	WarehouseToID   string          `json:"warehouse_to_id,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InventoryResponse saldo de un producto en una bodega.
type InventoryResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	WarehouseID  string     `json:"warehouse_id"`
	Quantity     int64      `json:"quantity"`
	MinStock     int64      `json:"min_stock"`
	MaxStock     *int64     `json:"max_stock,omitempty"`
	Location     string     `json:"location,omitempty"`
	IsLowStock   bool       `json:"is_low_stock"`
	IsOverStock  bool       `json:"is_over_stock"`
	LastMovement *time.Time `json:"last_movement,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// InventoryListResponse lista paginada de saldos.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// KardexEntryResponse una línea del kardex.
type KardexEntryResponse struct {
	ID              string          `json:"id"`
	Seq             int64           `json:"seq"`
	MovementID      string          `json:"movement_id"`
	WarehouseID     string          `json:"warehouse_id"`
	MovementType    string          `json:"movement_type"`
	InputQuantity   int64           `json:"input_quantity"`
	OutputQuantity  int64           `json:"output_quantity"`
	BalanceQuantity int64           `json:"balance_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	AverageCost     decimal.Decimal `json:"average_cost"`
	InputValue      decimal.Decimal `json:"input_value"`
	OutputValue     decimal.Decimal `json:"output_value"`
	BalanceValue    decimal.Decimal `json:"balance_value"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// KardexListResponse historial paginado.
type KardexListResponse struct {
	Items []KardexEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LedgerResponse respuesta de una operación del kardex.
type LedgerResponse struct {
	Movement    MovementResponse      `json:"movement"`
	Inventories []InventoryResponse   `json:"inventories"`
	Kardex      []KardexEntryResponse `json:"kardex"`
}

// WarehouseStockDTO total de unidades por bodega.
type WarehouseStockDTO struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Total         int64  `json:"total"`
}

// TotalStockResponse respuesta de GET /api/products/:id/total-stock.
type TotalStockResponse struct {
	ProductID string `json:"product_id"`
	Total     int64  `json:"total"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un producto
// que está en o por debajo de su stock mínimo en una bodega.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	WarehouseID        string          `json:"warehouse_id"`
	CurrentStock       int64           `json:"current_stock"`
	MinStock           int64           `json:"min_stock"`
	TargetStock        int64           `json:"target_stock"`        // max_stock o 2 × min_stock
	SuggestedOrderQty  int64           `json:"suggested_order_qty"` // TargetStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
