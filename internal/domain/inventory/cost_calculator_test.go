package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 unidades a 100 + 10 unidades a 200 → 150
	got := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "esperado 150, obtenido %s", got)
}

func TestCostCalculator_SinStockDevuelveCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(50))
	assert.True(t, got.IsZero())
}

func TestValueInflow_PrimeraEntrada(t *testing.T) {
	v := inventory.ValueInflow(0, decimal.Zero, 10, decimal.NewFromInt(100))
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, v.BalanceValue.Equal(decimal.NewFromInt(1000)))
}

func TestValueOutflow_ConservaPromedio(t *testing.T) {
	v := inventory.ValueOutflow(4, decimal.NewFromInt(150))
	assert.True(t, v.AverageCost.Equal(decimal.NewFromInt(150)))
	assert.True(t, v.BalanceValue.Equal(decimal.NewFromInt(600)))
}

func TestLockOrder_EsDeterminista(t *testing.T) {
	a1, b1 := inventory.LockOrder("wh-b", "wh-a")
	a2, b2 := inventory.LockOrder("wh-a", "wh-b")
	assert.Equal(t, "wh-a", a1)
	assert.Equal(t, "wh-b", b1)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestAddQuantity_Limites(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		q       int64
		want    int64
		wantErr bool
	}{
		{"suma normal", 10, 5, 15, false},
		{"hasta el tope", inventory.MaxQuantity - 5, 5, inventory.MaxQuantity, false},
		{"pasa el tope", inventory.MaxQuantity - 5, 10, 0, true},
		{"cantidad máxima de int64", 10, math.MaxInt64, 0, true},
		{"cantidad cero", 10, 0, 0, true},
		{"cantidad negativa", 10, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.AddQuantity(tt.balance, tt.q)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
