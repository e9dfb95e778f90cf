package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
	"github.com/jhoicas/Inventario-kardex/internal/infrastructure/memory"
)

var key = repository.InventoryKey{CompanyID: "c1", ProductID: "p1", WarehouseID: "w1"}

func TestTxRunner_RollbackDiscardsWrites(t *testing.T) {
	store := memory.NewStore(time.Second)
	runner := memory.NewTxRunner(store)
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(repos inventory.TxRepositories) error {
		inv, err := repos.Inventory.LockOrCreate(context.Background(), key)
		require.NoError(t, err)
		inv.Quantity = 9
		require.NoError(t, repos.Inventory.Save(context.Background(), inv))
		require.NoError(t, repos.Movements.Create(context.Background(), &entity.Movement{CompanyID: "c1"}))
		require.NoError(t, repos.Kardex.Create(context.Background(), &entity.KardexEntry{CompanyID: "c1"}))
		return boom
	})

	require.ErrorIs(t, err, boom)
	inv, err := memory.NewInventoryRepository(store).Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, inv)
	assert.Empty(t, memory.NewMovementRepository(store).All())
}

func TestTxRunner_CommitAssignsSeq(t *testing.T) {
	store := memory.NewStore(time.Second)
	runner := memory.NewTxRunner(store)
	entries := []*entity.KardexEntry{
		{CompanyID: "c1", ProductID: "p1", WarehouseID: "w1", BalanceQuantity: 1},
		{CompanyID: "c1", ProductID: "p1", WarehouseID: "w1", BalanceQuantity: 2},
	}

	err := runner.Run(context.Background(), func(repos inventory.TxRepositories) error {
		for _, e := range entries {
			if err := repos.Kardex.Create(context.Background(), e); err != nil {
				return err
			}
		}
		latest, err := repos.Kardex.Latest(context.Background(), "c1", "p1", "w1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), latest.BalanceQuantity, "dentro de la tx se ve lo pendiente")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, int64(2), entries[1].Seq)
	latest, err := memory.NewKardexRepository(store).Latest(context.Background(), "c1", "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.Seq)
}

func TestTxRunner_LockTimeoutIsContention(t *testing.T) {
	store := memory.NewStore(30 * time.Millisecond)
	runner := memory.NewTxRunner(store)
	holding := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = runner.Run(context.Background(), func(inventory.TxRepositories) error {
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding

	err := runner.Run(context.Background(), func(inventory.TxRepositories) error { return nil })
	close(done)

	assert.ErrorIs(t, err, domain.ErrLockContention)
	assert.True(t, domain.IsRetryable(err))
}

func TestProductRepository_DuplicateSKU(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore(0))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Product{CompanyID: "c1", SKU: "A"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Product{CompanyID: "c1", SKU: "A"}), domain.ErrDuplicate)
	assert.NoError(t, repo.Create(ctx, &entity.Product{CompanyID: "c2", SKU: "A"}), "el SKU es único por empresa")
}

func TestWarehouseRepository_Uniqueness(t *testing.T) {
	repo := memory.NewWarehouseRepository(memory.NewStore(0))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Warehouse{CompanyID: "c1", Code: "B1", Name: "Principal"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Warehouse{CompanyID: "c2", Code: "B1", Name: "Otra"}), domain.ErrDuplicate, "code es único global")
	assert.ErrorIs(t, repo.Create(ctx, &entity.Warehouse{CompanyID: "c1", Code: "B2", Name: "Principal"}), domain.ErrDuplicate, "name es único por empresa")
	assert.NoError(t, repo.Create(ctx, &entity.Warehouse{CompanyID: "c2", Code: "B3", Name: "Principal"}))
}
