package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-kardex/internal/application/dto"
	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

// AuditUseCase consulta el registro de auditoría de la empresa del actor.
type AuditUseCase struct {
	repo repository.AuditRepository
}

func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List eventos del más reciente al más antiguo.
func (uc *AuditUseCase) List(ctx context.Context, actor inventory.Actor, f dto.AuditFilterRequest, page dto.PageRequest) (*dto.AuditListResponse, error) {
	page.DefaultPage()
	events, err := uc.repo.List(ctx, repository.AuditFilter{
		CompanyID:  actor.CompanyID,
		Action:     f.Action,
		EntityType: f.EntityType,
		EntityID:   f.EntityID,
		ActorID:    f.ActorID,
	}, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar auditoría: %w", err)
	}
	items := make([]dto.AuditEventResponse, 0, len(events))
	for i := range events {
		items = append(items, toAuditResponse(&events[i]))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID un evento de la empresa; el de otra empresa se informa como inexistente.
func (uc *AuditUseCase) GetByID(ctx context.Context, actor inventory.Actor, id string) (*dto.AuditEventResponse, error) {
	ev, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener evento: %w", err)
	}
	if ev == nil || ev.CompanyID != actor.CompanyID {
		return nil, domain.Wrap(domain.ErrNotFound, "audit_event", id)
	}
	out := toAuditResponse(ev)
	return &out, nil
}

func toAuditResponse(ev *entity.AuditEvent) dto.AuditEventResponse {
	return dto.AuditEventResponse{
		ID:         ev.ID,
		ActorID:    ev.ActorID,
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Before:     ev.Before,
		After:      ev.After,
		OccurredAt: ev.OccurredAt,
	}
}
