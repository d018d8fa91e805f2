package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/api/validators"
	"github.com/partsdesk/partsdesk-backend/internal/assignments"
	"github.com/partsdesk/partsdesk-backend/internal/workflow"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

type createAssignmentRequest struct {
	SupplierID    string  `json:"supplierId" validate:"required,uuid"`
	RequestType   string  `json:"requestType" validate:"required"`
	RequestID     string  `json:"requestId" validate:"required,max=128"`
	Priority      *int    `json:"priority" validate:"omitempty,min=0,max=3"`
	SupplierNotes *string `json:"supplierNotes" validate:"omitempty,max=2000"`
}

type updateStatusRequest struct {
	Status      string  `json:"status" validate:"required"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	QuotedTotal *string `json:"quotedTotal" validate:"omitempty"`
}

type updatePriorityRequest struct {
	Priority int `json:"priority" validate:"min=0,max=3"`
}

// AssignmentCreate binds a request to a supplier and opens its workflow.
func AssignmentCreate(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAssignmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID, err := uuid.Parse(body.SupplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id"))
			return
		}
		requestType, err := enums.ParseRequestType(body.RequestType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request type"))
			return
		}

		priority := enums.PriorityNormal
		if body.Priority != nil {
			priority, err = enums.ParsePriority(*body.Priority)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority"))
				return
			}
		}

		notes := body.SupplierNotes
		if notes != nil {
			clean := validators.SanitizeString(*notes, 2000)
			notes = &clean
		}

		assignment, err := svc.Create(r.Context(), assignments.CreateInput{
			SupplierID:    supplierID,
			RequestType:   requestType,
			RequestID:     validators.SanitizeString(body.RequestID, 128),
			Priority:      priority,
			SupplierNotes: notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, assignment)
	}
}

// AssignmentList returns one page of assignments matching the filters.
func AssignmentList(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := listFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AssignmentDetail returns a single assignment by id.
func AssignmentDetail(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := assignmentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

// AssignmentUpdateStatus applies an admin status transition.
func AssignmentUpdateStatus(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := statusInputFromRequest(r, enums.ActorRoleAdmin, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.UpdateStatus(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

// AssignmentUpdatePriority changes the triage priority. Admin only.
func AssignmentUpdatePriority(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := assignmentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePriorityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priority, err := enums.ParsePriority(body.Priority)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority"))
			return
		}

		assignment, err := svc.UpdatePriority(r.Context(), assignments.UpdatePriorityInput{
			AssignmentID: id,
			Priority:     priority,
			ActorRole:    enums.ActorRoleAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

// AssignmentAuditTrail returns the status history oldest first.
func AssignmentAuditTrail(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := assignmentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		trail, err := svc.GetAuditTrail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"entries": trail})
	}
}

// WorkflowStatuses exposes the status registry for a request type so clients
// can render labels and tones without hardcoding them.
func WorkflowStatuses(logg *logger.Logger) http.HandlerFunc {
	type statusEntry struct {
		Code  string `json:"code"`
		Label string `json:"label"`
		Tone  string `json:"tone"`
		Tag   string `json:"tag"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		requestType, err := enums.ParseRequestType(chi.URLParam(r, "requestType"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request type"))
			return
		}

		policy := workflow.PolicyFor(requestType)
		entries := make([]statusEntry, 0)
		for _, status := range policy.Statuses() {
			info, ok := workflow.StatusInfoFor(status)
			if !ok {
				continue
			}
			entries = append(entries, statusEntry{
				Code:  status.String(),
				Label: info.Label,
				Tone:  info.Tone,
				Tag:   info.Tag,
			})
		}
		responses.WriteSuccess(w, map[string]any{
			"requestType": requestType,
			"label":       workflow.RequestTypeLabel(requestType),
			"statuses":    entries,
		})
	}
}

func assignmentIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "assignmentId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assignment id")
	}
	return id, nil
}

func listFilterFromQuery(r *http.Request) (assignments.ListFilter, error) {
	var filter assignments.ListFilter

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseAssignmentStatus(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		requestType, err := enums.ParseRequestType(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type filter")
		}
		filter.RequestType = &requestType
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("supplierId")); raw != "" {
		supplierID, err := uuid.Parse(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplierId filter")
		}
		filter.SupplierID = &supplierID
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return filter, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return filter, err
	}
	filter.Pagination = pagination.Params{Page: page, Limit: limit}
	return filter, nil
}

func statusInputFromRequest(r *http.Request, role enums.ActorRole, actorSupplierID *uuid.UUID) (assignments.UpdateStatusInput, error) {
	var input assignments.UpdateStatusInput

	id, err := assignmentIDParam(r)
	if err != nil {
		return input, err
	}

	var body updateStatusRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return input, err
	}

	status, err := enums.ParseAssignmentStatus(body.Status)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	input = assignments.UpdateStatusInput{
		AssignmentID:    id,
		NewStatus:       status,
		ActorRole:       role,
		ActorSupplierID: actorSupplierID,
		Notes:           body.Notes,
	}

	if body.QuotedTotal != nil {
		total, err := decimal.NewFromString(strings.TrimSpace(*body.QuotedTotal))
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quoted total")
		}
		input.QuotedTotal = &total
	}
	return input, nil
}
