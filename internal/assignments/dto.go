package assignments

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

// CreateInput captures the data required to assign a request to a supplier.
type CreateInput struct {
	SupplierID    uuid.UUID
	RequestType   enums.RequestType
	RequestID     string
	Priority      enums.Priority
	SupplierNotes *string
}

// ListFilter is an AND of the provided criteria; nil fields match all rows.
type ListFilter struct {
	Status      *enums.AssignmentStatus
	RequestType *enums.RequestType
	SupplierID  *uuid.UUID
	Pagination  pagination.Params
}

// ListResult wraps one page of assignments.
type ListResult struct {
	Items []models.Assignment `json:"items"`
	Meta  pagination.Meta     `json:"meta"`
}

// UpdateStatusInput carries a requested status transition.
type UpdateStatusInput struct {
	AssignmentID uuid.UUID
	NewStatus    enums.AssignmentStatus
	ActorRole    enums.ActorRole
	// ActorSupplierID scopes supplier-initiated transitions to their own
	// assignments. Nil for admin actors.
	ActorSupplierID *uuid.UUID
	Notes           *string
	QuotedTotal     *decimal.Decimal
}

// UpdatePriorityInput carries a priority change. Priority is mutable at any
// time regardless of status, but only by admins.
type UpdatePriorityInput struct {
	AssignmentID uuid.UUID
	Priority     enums.Priority
	ActorRole    enums.ActorRole
}
