package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/application/usecase"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-kardex/pkg/config"
)

type LedgerIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	ledger    *inventory.LedgerUseCase
	company   *entity.Company
	product   *entity.Product
	w1, w2    *entity.Warehouse
	actor     inventory.Actor
}

func TestLedgerIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integración con Postgres omitida en -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(LedgerIntegrationTestSuite))
}

func (s *LedgerIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("kardex_test"),
		tcpostgres.WithUsername("kardex"),
		tcpostgres.WithPassword("kardex"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := postgres.NewPool(s.ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 20}, 300*time.Millisecond)
	s.Require().NoError(err)
	s.pool = pool
	s.Require().NoError(postgres.Migrate(s.ctx, pool))
	// Idempotente: una segunda corrida no reaplica nada.
	s.Require().NoError(postgres.Migrate(s.ctx, pool))

	s.ledger = inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewWarehouseRepository(pool),
		postgres.NewAuditRepository(pool),
		nil, nil,
	)
}

func (s *LedgerIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

// SetupTest crea una empresa nueva por test para aislar los datos.
func (s *LedgerIntegrationTestSuite) SetupTest() {
	now := time.Now()
	s.company = &entity.Company{
		ID: uuid.New().String(), Name: "Demo", NIT: uuid.New().String()[:12],
		Status: entity.CompanyStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(postgres.NewCompanyRepository(s.pool).Create(s.ctx, s.company))

	s.product = &entity.Product{
		ID: uuid.New().String(), CompanyID: s.company.ID, SKU: "SKU-1", Name: "Producto",
		CostPrice: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(150), IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(postgres.NewProductRepository(s.pool).Create(s.ctx, s.product))

	s.w1 = s.newWarehouse("W1", now)
	s.w2 = s.newWarehouse("W2", now)
	s.actor = inventory.Actor{UserID: "it-user", CompanyID: s.company.ID}
}

func (s *LedgerIntegrationTestSuite) newWarehouse(code string, now time.Time) *entity.Warehouse {
	w := &entity.Warehouse{
		ID: uuid.New().String(), CompanyID: s.company.ID, Code: code + "-" + s.company.ID[:8], Name: "Bodega " + code,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(postgres.NewWarehouseRepository(s.pool).Create(s.ctx, w))
	return w
}

func (s *LedgerIntegrationTestSuite) balance(warehouseID string) int64 {
	inv, err := postgres.NewInventoryRepository(s.pool).Get(s.ctx, repository.InventoryKey{
		CompanyID: s.company.ID, ProductID: s.product.ID, WarehouseID: warehouseID,
	})
	s.Require().NoError(err)
	if inv == nil {
		return 0
	}
	return inv.Quantity
}

func (s *LedgerIntegrationTestSuite) TestConcurrentExitsNeverOversell() {
	const (
		stock    = 20
		perExit  = 3
		requests = 15
	)
	_, err := s.ledger.CreateEntry(s.ctx, inventory.EntryInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: stock, UnitCost: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inventory.RetryOnContention(s.ctx, 5, func() (*inventory.LedgerResult, error) {
				return s.ledger.CreateExit(s.ctx, inventory.ExitInput{
					Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: perExit,
				})
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			s.True(errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
		}()
	}
	wg.Wait()

	s.Equal(stock/perExit, successes)
	s.Equal(int64(stock%perExit), s.balance(s.w1.ID))

	last, err := postgres.NewKardexRepository(s.pool).Latest(s.ctx, s.company.ID, s.product.ID, s.w1.ID)
	s.Require().NoError(err)
	s.Equal(s.balance(s.w1.ID), last.BalanceQuantity)
}

func (s *LedgerIntegrationTestSuite) TestTransferConservesTotal() {
	_, err := s.ledger.CreateEntry(s.ctx, inventory.EntryInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 10, UnitCost: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	res, err := s.ledger.CreateTransfer(s.ctx, inventory.TransferInput{
		Actor: s.actor, ProductID: s.product.ID, FromWarehouseID: s.w1.ID, ToWarehouseID: s.w2.ID, Quantity: 4,
	})
	s.Require().NoError(err)
	s.Len(res.Kardex, 2)
	s.Less(res.Kardex[0].Seq, res.Kardex[1].Seq)
	s.Equal(int64(6), s.balance(s.w1.ID))
	s.Equal(int64(4), s.balance(s.w2.ID))
}

func (s *LedgerIntegrationTestSuite) TestFailedTransferLeavesNoTrace() {
	_, err := s.ledger.CreateTransfer(s.ctx, inventory.TransferInput{
		Actor: s.actor, ProductID: s.product.ID, FromWarehouseID: s.w1.ID, ToWarehouseID: s.w2.ID, Quantity: 1,
	})
	s.ErrorIs(err, domain.ErrNoInventory)

	inv, err := postgres.NewInventoryRepository(s.pool).Get(s.ctx, repository.InventoryKey{
		CompanyID: s.company.ID, ProductID: s.product.ID, WarehouseID: s.w2.ID,
	})
	s.Require().NoError(err)
	s.Nil(inv, "la fila destino se revierte con la transacción")
}

func (s *LedgerIntegrationTestSuite) TestLockTimeoutIsContention() {
	_, err := s.ledger.CreateEntry(s.ctx, inventory.EntryInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 5,
	})
	s.Require().NoError(err)

	key := repository.InventoryKey{CompanyID: s.company.ID, ProductID: s.product.ID, WarehouseID: s.w1.ID}
	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = postgres.NewTxRunner(s.pool).Run(s.ctx, func(repos inventory.TxRepositories) error {
			if _, err := repos.Inventory.GetForUpdate(s.ctx, key); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	_, err = s.ledger.CreateExit(s.ctx, inventory.ExitInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 1,
	})
	close(release)

	s.ErrorIs(err, domain.ErrLockContention)
	s.True(domain.IsRetryable(err))
	s.Equal(int64(5), s.balance(s.w1.ID))
}

// Un filtro con un id que no es UUID es un 400, no un error interno.
func (s *LedgerIntegrationTestSuite) TestNonUUIDFiltersAreInvalidInput() {
	const bad = "not-a-uuid"
	inventories := postgres.NewInventoryRepository(s.pool)

	_, err := inventories.ListByCompany(s.ctx, s.company.ID, bad, 10, 0)
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = inventories.ListLowStock(s.ctx, s.company.ID, bad)
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = postgres.NewKardexRepository(s.pool).ListByProduct(s.ctx, s.company.ID, s.product.ID, bad, 10, 0)
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = postgres.NewMovementRepository(s.pool).List(s.ctx, repository.MovementFilter{
		CompanyID: s.company.ID, WarehouseID: bad,
	}, 10, 0)
	s.ErrorIs(err, domain.ErrInvalidInput)

	// Las búsquedas por id, en cambio, responden "no existe".
	m, err := postgres.NewMovementRepository(s.pool).GetByID(s.ctx, bad)
	s.NoError(err)
	s.Nil(m)
}

// El borrado lógico toma el bloqueo de la fila del producto: protegido mientras hay
// stock y, una vez borrado, el libro ya no acepta movimientos.
func (s *LedgerIntegrationTestSuite) TestProductSoftDeleteUnderLock() {
	txRunner := postgres.NewTxRunner(s.pool)
	products := usecase.NewProductUseCase(txRunner, postgres.NewProductRepository(s.pool), nil, nil)

	_, err := s.ledger.CreateEntry(s.ctx, inventory.EntryInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 2, UnitCost: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)
	s.ErrorIs(products.SoftDelete(s.ctx, s.actor, s.product.ID), domain.ErrProtectedDeletion)

	_, err = s.ledger.CreateExit(s.ctx, inventory.ExitInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 2,
	})
	s.Require().NoError(err)
	s.Require().NoError(products.SoftDelete(s.ctx, s.actor, s.product.ID))

	_, err = s.ledger.CreateEntry(s.ctx, inventory.EntryInput{
		Actor: s.actor, ProductID: s.product.ID, WarehouseID: s.w1.ID, Quantity: 1, UnitCost: decimal.NewFromInt(100),
	})
	s.ErrorIs(err, domain.ErrNotFound)

	restored, err := products.Restore(s.ctx, s.actor, s.product.ID)
	s.Require().NoError(err)
	s.False(restored.IsDeleted)
}

func (s *LedgerIntegrationTestSuite) TestSupplierRepository() {
	repo := postgres.NewSupplierRepository(s.pool)
	now := time.Now()
	sup := &entity.Supplier{
		ID: uuid.New().String(), CompanyID: s.company.ID, Name: "Ferretería Central", Identification: "900555111-2",
		Email: "compras@central.co", Country: entity.DefaultSupplierCountry, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(repo.Create(s.ctx, sup))

	dup := *sup
	dup.ID = uuid.New().String()
	s.ErrorIs(repo.Create(s.ctx, &dup), domain.ErrDuplicate)

	found, err := repo.ListByCompany(s.ctx, s.company.ID, "CENTRAL", false, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(sup.ID, found[0].ID)

	sup.SoftDelete(now)
	s.Require().NoError(repo.Update(s.ctx, sup))
	found, err = repo.ListByCompany(s.ctx, s.company.ID, "", false, 10, 0)
	s.Require().NoError(err)
	s.Empty(found)

	got, err := repo.GetByID(s.ctx, "not-a-uuid")
	s.NoError(err)
	s.Nil(got)
}
