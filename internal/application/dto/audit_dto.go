package dto

import "time"

// AuditFilterRequest query de GET /api/audit.
type AuditFilterRequest struct {
	Action     string `query:"action" validate:"omitempty,max=40"`
	EntityType string `query:"entity_type" validate:"omitempty,max=40"`
	EntityID   string `query:"entity_id" validate:"omitempty,max=100"`
	ActorID    string `query:"actor_id" validate:"omitempty,max=100"`
}

// AuditEventResponse un evento de auditoría.
type AuditEventResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type AuditListResponse struct {
	Items []AuditEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
