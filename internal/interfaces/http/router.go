package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/application/report"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/pkg/jwt"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger         *inventory.LedgerUseCase
	Projection     *inventory.ProjectionUseCase
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	SupplierUC     *usecase.SupplierUseCase
	AuditUC        *usecase.AuditUseCase
	Reports        *report.ReportUseCase
	MetricsHandler http.Handler // nil = sin /metrics
	JWTSecret      string
	RetryAttempts  int
	Log            *logger.Logger // nil = descarta
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	const (
		admin     = jwt.RoleAdmin
		bodeguero = jwt.RoleBodeguero
		vendedor  = jwt.RoleVendedor
	)
	anyRole := RequireRole(admin, bodeguero, vendedor)
	adminOnly := RequireRole(admin)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventory (kardex)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Projection, deps.RetryAttempts, deps.Log)
	inv.Post("/entries", RequireRole(admin, bodeguero), inventoryHandler.CreateEntry)
	inv.Post("/exits", anyRole, inventoryHandler.CreateExit)
	inv.Post("/transfers", RequireRole(admin, bodeguero), inventoryHandler.CreateTransfer)
	inv.Post("/adjustments", adminOnly, inventoryHandler.CreateAdjustment)
	inv.Put("/limits", RequireRole(admin, bodeguero), inventoryHandler.UpdateStockLimits)
	inv.Get("/", anyRole, inventoryHandler.ListInventory)
	inv.Get("/low-stock", anyRole, inventoryHandler.LowStock)
	inv.Get("/stock-by-warehouse", anyRole, inventoryHandler.StockByWarehouse)
	inv.Get("/kardex", anyRole, inventoryHandler.KardexHistory)
	inv.Get("/replenishment-list", anyRole, inventoryHandler.GetReplenishmentList)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Get("/:id/total-stock", anyRole, inventoryHandler.TotalStock)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/restore", adminOnly, productHandler.Restore)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	warehouses.Get("/", anyRole, warehouseHandler.List)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/:id", anyRole, warehouseHandler.GetByID)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)
	warehouses.Post("/:id/restore", adminOnly, warehouseHandler.Restore)

	// Movements
	movementHandler := NewMovementHandler(deps.Projection, deps.Log)
	protected.Get("/movements", anyRole, movementHandler.List)
	protected.Get("/movements/:id", anyRole, movementHandler.GetByID)

	// Suppliers
	if deps.SupplierUC != nil {
		suppliers := protected.Group("/suppliers")
		supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Log)
		suppliers.Get("/", anyRole, supplierHandler.List)
		suppliers.Post("/", adminOnly, supplierHandler.Create)
		suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
		suppliers.Put("/:id", adminOnly, supplierHandler.Update)
		suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)
		suppliers.Post("/:id/restore", adminOnly, supplierHandler.Restore)
	}

	// Auditoría
	if deps.AuditUC != nil {
		auditHandler := NewAuditHandler(deps.AuditUC, deps.Log)
		protected.Get("/audit", adminOnly, auditHandler.List)
		protected.Get("/audit/:id", adminOnly, auditHandler.GetByID)
	}

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Projection, deps.Log)
	protected.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)

	// Reportes
	if deps.Reports != nil {
		reportHandler := NewReportHandler(deps.Reports, deps.Log)
		protected.Get("/reports/kardex/:product_id", anyRole, reportHandler.KardexPDF)
		protected.Get("/reports/inventory", anyRole, reportHandler.InventoryPDF)
		protected.Get("/reports/movements", anyRole, reportHandler.MovementsPDF)
	}
}
