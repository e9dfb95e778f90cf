// seed aplica las migraciones y carga una empresa demo con dos bodegas, productos
// y entradas iniciales registradas por el motor del kardex.
//
// Uso: go run ./cmd/seed
// Imprime un token JWT de administrador para probar la API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/audit"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-kardex/pkg/config"
	"github.com/jhoicas/Inventario-kardex/pkg/jwt"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

var demoProducts = []struct {
	sku, name  string
	cost, sale string
	qty        int64
	minStock   int64
}{
	{"TOR-001", "Tornillo hexagonal 1/4", "350", "600", 500, 100},
	{"TUE-002", "Tuerca 1/4", "120", "250", 40, 80},
	{"ARA-003", "Arandela plana", "80", "150", 0, 50},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("seed requiere DB_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Ledger.LockTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	now := time.Now()
	companyID := uuid.New().String()
	company := &entity.Company{
		ID: companyID, Name: "Ferretería Demo SAS", NIT: "900-" + companyID[:8],
		Status: entity.CompanyStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	if err := postgres.NewCompanyRepository(pool).Create(ctx, company); err != nil {
		log.Fatal().Err(err).Msg("crear empresa")
	}
	actor := inventory.Actor{UserID: uuid.New().String(), CompanyID: company.ID}

	sink := audit.NewLogSink(log)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, sink, log)
	warehouseUC := usecase.NewWarehouseUseCase(txRunner, warehouseRepo, sink, log)
	ledger := inventory.NewLedgerUseCase(txRunner, productRepo, warehouseRepo, sink, nil, log)

	var warehouseIDs []string
	for _, w := range []dto.CreateWarehouseRequest{
		{Code: "PRI-" + companyID[:8], Name: "Bodega Principal", Location: "Bogotá"},
		{Code: "NOR-" + companyID[:8], Name: "Bodega Norte", Location: "Medellín"},
	} {
		out, err := warehouseUC.Create(ctx, actor, w)
		if err != nil {
			log.Fatal().Err(err).Str("code", w.Code).Msg("crear bodega")
		}
		warehouseIDs = append(warehouseIDs, out.ID)
	}

	for _, p := range demoProducts {
		out, err := productUC.Create(ctx, actor, dto.CreateProductRequest{
			SKU: p.sku, Name: p.name,
			CostPrice: decimal.RequireFromString(p.cost),
			SalePrice: decimal.RequireFromString(p.sale),
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("crear producto")
		}
		if _, err := ledger.UpdateStockLimits(ctx, inventory.LimitsInput{
			Actor: actor, ProductID: out.ID, WarehouseID: warehouseIDs[0], MinStock: p.minStock,
		}); err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("límites de stock")
		}
		// Los productos sin existencias solo quedan con fila de inventario.
		if p.qty == 0 {
			continue
		}
		if _, err := ledger.CreateEntry(ctx, inventory.EntryInput{
			Actor: actor, ProductID: out.ID, WarehouseID: warehouseIDs[0],
			Quantity: p.qty, UnitCost: decimal.RequireFromString(p.cost), Reference: "Inventario inicial",
		}); err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("entrada inicial")
		}
	}

	token, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
		UserID: actor.UserID, CompanyID: company.ID, Role: jwt.RoleAdmin,
	}, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}

	log.Info().
		Str("company_id", company.ID).
		Strs("warehouses", warehouseIDs).
		Int("products", len(demoProducts)).
		Msg("datos demo cargados")
	fmt.Println("Bearer " + token)
}
