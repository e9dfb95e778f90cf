package entity

import "time"

// Acciones registradas en auditoría.
const (
	AuditActionMovementIn       = "MOVEMENT_IN"
	AuditActionMovementOut      = "MOVEMENT_OUT"
	AuditActionMovementTransfer = "MOVEMENT_TRANSFER"
	AuditActionMovementAdjust   = "MOVEMENT_ADJUST"
	AuditActionLimitsUpdate     = "INVENTORY_LIMITS"
	AuditActionCreate           = "CREATE"
	AuditActionUpdate           = "UPDATE"
	AuditActionDelete           = "DELETE"
	AuditActionRestore          = "RESTORE"
)

// AuditEvent hecho "quién hizo qué" entregado al sink después del commit.
type AuditEvent struct {
	ID         string
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string // movement, inventory, product, warehouse
	EntityID   string
	Before     map[string]any
	After      map[string]any
	OccurredAt time.Time
}
