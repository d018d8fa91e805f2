package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// AuditEntry records one status change on an assignment. Entries are
// append-only and never updated or deleted.
type AuditEntry struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssignmentID  uuid.UUID              `gorm:"column:assignment_id;type:uuid;not null;index" json:"assignment_id"`
	OldStatus     enums.AssignmentStatus `gorm:"column:old_status;type:text;not null" json:"old_status"`
	NewStatus     enums.AssignmentStatus `gorm:"column:new_status;type:text;not null" json:"new_status"`
	ChangedByRole enums.ActorRole        `gorm:"column:changed_by_role;type:text;not null" json:"changed_by_role"`
	Notes         *string                `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ChangedAt     time.Time              `gorm:"column:changed_at;type:timestamptz;default:now()" json:"changed_at"`
}
