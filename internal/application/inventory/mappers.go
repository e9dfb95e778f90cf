package inventory

import (
	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

// ToLedgerResponse convierte el resultado de una operación en su DTO de salida.
func ToLedgerResponse(res *LedgerResult) dto.LedgerResponse {
	out := dto.LedgerResponse{
		Movement:    ToMovementResponse(res.Movement),
		Inventories: make([]dto.InventoryResponse, 0, len(res.Inventories)),
		Kardex:      make([]dto.KardexEntryResponse, 0, len(res.Kardex)),
	}
	for _, inv := range res.Inventories {
		out.Inventories = append(out.Inventories, ToInventoryResponse(inv))
	}
	for _, k := range res.Kardex {
		out.Kardex = append(out.Kardex, toKardexResponse(k))
	}
	return out
}

func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		Type:            m.Type,
		Status:          m.Status,
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		WarehouseFromID: m.WarehouseFromID,
		WarehouseToID:   m.WarehouseToID,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		Reference:       m.Reference,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

func ToInventoryResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:           inv.ID,
		ProductID:    inv.ProductID,
		WarehouseID:  inv.WarehouseID,
		Quantity:     inv.Quantity,
		MinStock:     inv.MinStock,
		MaxStock:     inv.MaxStock,
		Location:     inv.Location,
		IsLowStock:   inv.IsLowStock(),
		IsOverStock:  inv.IsOverStock(),
		LastMovement: inv.LastMovement,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func toKardexResponse(k *entity.KardexEntry) dto.KardexEntryResponse {
	return dto.KardexEntryResponse{
		ID:              k.ID,
		Seq:             k.Seq,
		MovementID:      k.MovementID,
		WarehouseID:     k.WarehouseID,
		MovementType:    k.MovementType,
		InputQuantity:   k.InputQuantity,
		OutputQuantity:  k.OutputQuantity,
		BalanceQuantity: k.BalanceQuantity,
		UnitCost:        k.UnitCost,
		AverageCost:     k.AverageCost,
		InputValue:      k.InputValue,
		OutputValue:     k.OutputValue,
		BalanceValue:    k.BalanceValue,
		Reference:       k.Reference,
		Notes:           k.Notes,
		CreatedAt:       k.CreatedAt,
	}
}

func toWarehouseStockDTOs(rows []entity.WarehouseStock) []dto.WarehouseStockDTO {
	out := make([]dto.WarehouseStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WarehouseStockDTO{WarehouseID: r.WarehouseID, WarehouseName: r.WarehouseName, Total: r.Total})
	}
	return out
}
