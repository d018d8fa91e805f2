package assignments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/internal/workflow"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

// activeRequestConstraint enforces a single open assignment per request.
const activeRequestConstraint = "idx_assignments_active_request"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type supplierDirectory interface {
	EnsureAssignable(ctx context.Context, supplierID uuid.UUID) error
}

// TransitionObserver is notified after a status change commits. Badge
// counters and notification fans subscribe through this hook.
type TransitionObserver interface {
	StatusChanged(ctx context.Context, assignment *models.Assignment, entry *models.AuditEntry)
}

// Service is the assignment store: the single owner of Assignment and
// AuditEntry state.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Assignment, error)
	UpdatePriority(ctx context.Context, input UpdatePriorityInput) (*models.Assignment, error)
	GetAuditTrail(ctx context.Context, id uuid.UUID) ([]models.AuditEntry, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	suppliers supplierDirectory
	observers []TransitionObserver
	now       func() time.Time
}

// ServiceParams configure the assignment store.
type ServiceParams struct {
	Repo      Repository
	Tx        txRunner
	Suppliers supplierDirectory
	Observers []TransitionObserver
	Now       func() time.Time
}

// NewService builds the assignment store with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.Suppliers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "supplier directory required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:      params.Repo,
		tx:        params.Tx,
		suppliers: params.Suppliers,
		observers: params.Observers,
		now:       now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Assignment, error) {
	if strings.TrimSpace(input.RequestID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if !input.RequestType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request type")
	}
	if !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "priority must be between 0 (low) and 3 (urgent)")
	}
	if err := s.suppliers.EnsureAssignable(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	now := s.now()
	assignment := &models.Assignment{
		SupplierID:    input.SupplierID,
		RequestType:   input.RequestType,
		RequestID:     strings.TrimSpace(input.RequestID),
		Status:        enums.AssignmentStatusNew,
		Priority:      input.Priority,
		SupplierNotes: normalizeNotes(input.SupplierNotes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		if db.IsUniqueViolation(err, activeRequestConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "request already has an open assignment")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignment")
	}
	return assignment, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignment id required")
	}
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
	}
	return assignment, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filter.RequestType != nil && !filter.RequestType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request type filter")
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	return &ListResult{
		Items: items,
		Meta:  pagination.NewMeta(filter.Pagination, total),
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Assignment, error) {
	if input.AssignmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignment id required")
	}
	if !input.NewStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if !input.ActorRole.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor role missing")
	}

	var updated *models.Assignment
	var entry *models.AuditEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		assignment, err := repo.FindByID(ctx, input.AssignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
		}
		if input.ActorSupplierID != nil && assignment.SupplierID != *input.ActorSupplierID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "assignment does not belong to supplier")
		}

		edge, err := s.authorizeTransition(assignment, input)
		if err != nil {
			return err
		}

		notes := normalizeNotes(input.Notes)
		if edge.NotesRequired && notes == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "notes required for this transition").
				WithDetails(map[string]any{"field": "notes"})
		}

		now := s.now()
		updates := map[string]any{
			"status":     input.NewStatus,
			"updated_at": now,
		}
		if notes != nil {
			updates["supplier_notes"] = *notes
		}
		if input.QuotedTotal != nil {
			if input.QuotedTotal.Sign() <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quoted total must be positive")
			}
			updates["quoted_total"] = *input.QuotedTotal
		}

		affected, err := repo.UpdateStatusFrom(ctx, assignment.ID, assignment.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment status")
		}
		if affected == 0 {
			// The row existed moments ago, so a concurrent transition
			// committed between our read and write.
			return pkgerrors.New(pkgerrors.CodeConflict, "assignment status changed concurrently; reload and retry")
		}

		entry = &models.AuditEntry{
			AssignmentID:  assignment.ID,
			OldStatus:     assignment.Status,
			NewStatus:     input.NewStatus,
			ChangedByRole: input.ActorRole,
			Notes:         notes,
			ChangedAt:     now,
		}
		if err := repo.AppendAudit(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append audit entry")
		}

		assignment.Status = input.NewStatus
		assignment.UpdatedAt = now
		if notes != nil {
			assignment.SupplierNotes = notes
		}
		if input.QuotedTotal != nil {
			assignment.QuotedTotal = input.QuotedTotal
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, observer := range s.observers {
		observer.StatusChanged(ctx, updated, entry)
	}
	return updated, nil
}

func (s *service) authorizeTransition(assignment *models.Assignment, input UpdateStatusInput) (workflow.Edge, error) {
	edge, ok := workflow.Lookup(assignment.RequestType, assignment.Status, input.NewStatus)
	if !ok || (edge.AdminOnly && input.ActorRole != enums.ActorRoleAdmin) {
		allowed := workflow.AllowedNext(assignment.RequestType, assignment.Status, input.ActorRole)
		message := "transition not permitted from current status"
		if assignment.Status.IsTerminal() {
			message = "assignment is in a terminal status"
		}
		return workflow.Edge{}, pkgerrors.New(pkgerrors.CodeStateConflict, message).
			WithDetails(map[string]any{
				"current_status": assignment.Status,
				"allowed_next":   allowed,
			})
	}
	return edge, nil
}

func (s *service) UpdatePriority(ctx context.Context, input UpdatePriorityInput) (*models.Assignment, error) {
	if input.AssignmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignment id required")
	}
	if !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "priority must be between 0 (low) and 3 (urgent)")
	}
	if input.ActorRole != enums.ActorRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins may change priority")
	}

	affected, err := s.repo.UpdatePriority(ctx, input.AssignmentID, input.Priority, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update priority")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
	}
	return s.Get(ctx, input.AssignmentID)
}

func (s *service) GetAuditTrail(ctx context.Context, id uuid.UUID) ([]models.AuditEntry, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListAudit(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit trail")
	}
	return entries, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
