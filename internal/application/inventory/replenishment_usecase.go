package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
)

// ReplenishmentList devuelve las filas en o bajo su stock mínimo con la cantidad
// sugerida de pedido, ordenadas por déficit (1 = más urgente).
// Objetivo: max_stock si está definido; si no, 2 × min_stock.
// warehouseID puede ser vacío para considerar todas las bodegas de la empresa.
func (uc *ProjectionUseCase) ReplenishmentList(ctx context.Context, companyID, warehouseID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rows, err := uc.inventoryRepo.ListLowStock(ctx, companyID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	if len(rows) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rows))
	for _, inv := range rows {
		product, err := uc.productRepo.GetByID(ctx, inv.ProductID)
		if err != nil {
			return nil, fmt.Errorf("obtener producto: %w", err)
		}
		if product == nil || product.IsDeleted {
			continue
		}

		target := 2 * inv.MinStock
		if inv.MaxStock != nil {
			target = *inv.MaxStock
		}
		suggested := target - inv.Quantity
		if suggested <= 0 {
			continue
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          product.ID,
			SKU:                product.SKU,
			ProductName:        product.Name,
			WarehouseID:        inv.WarehouseID,
			CurrentStock:       inv.Quantity,
			MinStock:           inv.MinStock,
			TargetStock:        target,
			SuggestedOrderQty:  suggested,
			UnitCost:           product.CostPrice,
			EstimatedOrderCost: product.CostPrice.Mul(decimal.NewFromInt(suggested)),
		})
	}

	// Mayor déficit bajo el mínimo primero; desempate por costo estimado del pedido.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
