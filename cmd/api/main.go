// @title        Kardex API
// @version      1.0
// @description  Libro de movimientos de inventario multi-empresa (kardex) con saldos por bodega.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Inventario-kardex/docs"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/application/report"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/audit"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Inventario-kardex/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-kardex/internal/interfaces/http"
	"github.com/jhoicas/Inventario-kardex/pkg/config"
	"github.com/jhoicas/Inventario-kardex/pkg/logger"
)

// backend repositorios del driver elegido (postgres o memoria).
type backend struct {
	txRunner    inventory.TxRunner
	companies   repository.CompanyRepository
	products    repository.ProductRepository
	warehouses  repository.WarehouseRepository
	inventories repository.InventoryRepository
	movements   repository.MovementRepository
	kardex      repository.KardexRepository
	suppliers   repository.SupplierRepository
	auditStore  repository.AuditRepository
	close       func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore(cfg.Ledger.LockTimeout)
		return &backend{
			txRunner:    memory.NewTxRunner(store),
			companies:   memory.NewCompanyRepository(store),
			products:    memory.NewProductRepository(store),
			warehouses:  memory.NewWarehouseRepository(store),
			inventories: memory.NewInventoryRepository(store),
			movements:   memory.NewMovementRepository(store),
			kardex:      memory.NewKardexRepository(store),
			suppliers:   memory.NewSupplierRepository(store),
			auditStore:  memory.NewAuditRepository(store),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Ledger.LockTimeout)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		txRunner:    postgres.NewTxRunner(pool),
		companies:   postgres.NewCompanyRepository(pool),
		products:    postgres.NewProductRepository(pool),
		warehouses:  postgres.NewWarehouseRepository(pool),
		inventories: postgres.NewInventoryRepository(pool),
		movements:   postgres.NewMovementRepository(pool),
		kardex:      postgres.NewKardexRepository(pool),
		suppliers:   postgres.NewSupplierRepository(pool),
		auditStore:  postgres.NewAuditRepository(pool),
		close:       pool.Close,
	}, nil
}

// auditSink arma el destino de auditoría. Los eventos siempre quedan en el
// almacén del driver (consultable en /api/audit); AUDIT_SINK agrega la copia
// al log o a Kafka.
func auditSink(cfg *config.Config, b *backend, log *logger.Logger) (inventory.AuditSink, func()) {
	switch cfg.Audit.Sink {
	case config.AuditSinkPostgres:
		return b.auditStore, func() {}
	case config.AuditSinkKafka:
		sink := audit.NewKafkaSink(cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
		return audit.MultiSink{b.auditStore, sink}, func() {
			if err := sink.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor kafka")
			}
		}
	default:
		return audit.MultiSink{b.auditStore, audit.NewLogSink(log)}, func() {}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("audit_sink", cfg.Audit.Sink).
		Dur("lock_timeout", cfg.Ledger.LockTimeout).
		Msg("iniciando aplicación")

	ctx := context.Background()
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer b.close()

	sink, closeSink := auditSink(cfg, b, log)
	defer closeSink()

	ledgerMetrics := metrics.New("kardex")

	ledgerUC := inventory.NewLedgerUseCase(b.txRunner, b.products, b.warehouses, sink, ledgerMetrics, log)
	projectionUC := inventory.NewProjectionUseCase(b.inventories, b.movements, b.kardex, b.products, b.warehouses)
	productUC := usecase.NewProductUseCase(b.txRunner, b.products, sink, log)
	warehouseUC := usecase.NewWarehouseUseCase(b.txRunner, b.warehouses, sink, log)
	supplierUC := usecase.NewSupplierUseCase(b.suppliers, sink, log)
	auditUC := usecase.NewAuditUseCase(b.auditStore)
	reportUC := report.NewReportUseCase(b.companies, b.products, b.warehouses, b.inventories, b.movements, b.kardex,
		infrapdf.NewMarotoGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:         ledgerUC,
		Projection:     projectionUC,
		ProductUC:      productUC,
		WarehouseUC:    warehouseUC,
		SupplierUC:     supplierUC,
		AuditUC:        auditUC,
		Reports:        reportUC,
		MetricsHandler: ledgerMetrics.Handler(),
		JWTSecret:      cfg.JWT.Secret,
		RetryAttempts:  cfg.Ledger.RetryAttempts,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
