package dto

// MovementFilterRequest query de GET /api/movements y /api/reports/movements.
// warehouse_id coincide con la bodega de origen o la de destino.
type MovementFilterRequest struct {
	Type        string `query:"type" validate:"omitempty,oneof=IN OUT TRANSFER ADJUST"`
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementDetailResponse movimiento con nombres resueltos y las entradas de kardex que generó.
type MovementDetailResponse struct {
	MovementResponse
	ProductSKU        string                `json:"product_sku"`
	ProductName       string                `json:"product_name"`
	WarehouseFromName string                `json:"warehouse_from_name,omitempty"`
	WarehouseToName   string                `json:"warehouse_to_name,omitempty"`
	Kardex            []KardexEntryResponse `json:"kardex"`
}
