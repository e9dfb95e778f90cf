package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalUnits      int64               `json:"total_units"`
	LowStockCount   int                 `json:"low_stock_count"`
	TopWarehouses   []WarehouseStockDTO `json:"top_warehouses"` // top 5 por unidades
	RecentMovements []MovementResponse  `json:"recent_movements"`
}
