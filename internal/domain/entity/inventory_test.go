package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

func int64Ptr(v int64) *int64 { return &v }

func TestInventory_IsLowStock(t *testing.T) {
	cases := []struct {
		name     string
		qty, min int64
		want     bool
	}{
		{"bajo el mínimo", 2, 5, true},
		{"igual al mínimo", 5, 5, true},
		{"sobre el mínimo", 6, 5, false},
		{"sin mínimo y en cero", 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := entity.Inventory{Quantity: tc.qty, MinStock: tc.min}
			assert.Equal(t, tc.want, inv.IsLowStock())
		})
	}
}

func TestInventory_IsOverStock(t *testing.T) {
	assert.False(t, (&entity.Inventory{Quantity: 1000}).IsOverStock(), "sin máximo nunca hay sobre-stock")
	assert.True(t, (&entity.Inventory{Quantity: 10, MaxStock: int64Ptr(10)}).IsOverStock())
	assert.False(t, (&entity.Inventory{Quantity: 9, MaxStock: int64Ptr(10)}).IsOverStock())
}

func TestProduct_Margin(t *testing.T) {
	p := entity.Product{CostPrice: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(150)}
	assert.True(t, p.Margin().Equal(decimal.NewFromInt(50)))

	free := entity.Product{SalePrice: decimal.NewFromInt(10)}
	assert.True(t, free.Margin().IsZero())
}
