package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// MovementReportRow un movimiento con nombres resueltos.
type MovementReportRow struct {
	CreatedAt time.Time
	Type      string
	Product   string
	Quantity  int64
	From      string
	To        string
	CreatedBy string
}

// MovementsReportData últimos movimientos de la empresa.
type MovementsReportData struct {
	Company     *entity.Company
	Rows        []MovementReportRow
	GeneratedAt time.Time
}

// MovementsPDF reporte con los últimos movimientos que cumplen el filtro, del más reciente al más antiguo.
func (uc *ReportUseCase) MovementsPDF(ctx context.Context, companyID string, f dto.MovementFilterRequest) ([]byte, string, error) {
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	movements, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		CompanyID:   companyID,
		Type:        f.Type,
		ProductID:   f.ProductID,
		WarehouseID: f.WarehouseID,
	}, maxReportMovements, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar movimientos: %w", err)
	}

	lookup := uc.newNames()
	rows := make([]MovementReportRow, 0, len(movements))
	for _, m := range movements {
		p, err := lookup.product(ctx, m.ProductID)
		if err != nil {
			return nil, "", err
		}
		from, err := lookup.warehouse(ctx, m.WarehouseFromID)
		if err != nil {
			return nil, "", err
		}
		to, err := lookup.warehouse(ctx, m.WarehouseToID)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, MovementReportRow{
			CreatedAt: m.CreatedAt,
			Type:      m.Type,
			Product:   fmt.Sprintf("%s - %s", p.SKU, p.Name),
			Quantity:  m.Quantity,
			From:      from,
			To:        to,
			CreatedBy: m.CreatedBy,
		})
	}

	now := uc.now()
	pdfBytes, err := uc.generator.GenerateMovementsPDF(ctx, MovementsReportData{
		Company:     company,
		Rows:        rows,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "movements_report_" + now.Format("20060102_150405") + ".pdf", nil
}
