package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// Assignment binds a business request to the supplier responsible for it.
// SupplierID, RequestType and RequestID are immutable after creation;
// reassignment is modeled as a new Assignment so the audit trail stays whole.
type Assignment struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SupplierID    uuid.UUID              `gorm:"column:supplier_id;type:uuid;not null;index" json:"supplier_id"`
	RequestType   enums.RequestType      `gorm:"column:request_type;type:text;not null;index" json:"request_type"`
	RequestID     string                 `gorm:"column:request_id;type:text;not null" json:"request_id"`
	Status        enums.AssignmentStatus `gorm:"column:status;type:text;not null;index" json:"status"`
	Priority      enums.Priority         `gorm:"column:priority;not null;default:1" json:"priority"`
	SupplierNotes *string                `gorm:"column:supplier_notes;type:text" json:"supplier_notes,omitempty"`
	QuotedTotal   *decimal.Decimal       `gorm:"column:quoted_total;type:numeric(14,2)" json:"quoted_total,omitempty"`
	CreatedAt     time.Time              `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}
