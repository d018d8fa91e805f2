package workflow

import (
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// Edge describes one legal transition out of a status.
type Edge struct {
	To            enums.AssignmentStatus
	AdminOnly     bool
	NotesRequired bool
}

// Policy defines the legal transitions for one request type.
type Policy interface {
	RequestType() enums.RequestType
	// Next returns the outgoing edges for a status, in display order.
	// Terminal statuses return nil.
	Next(from enums.AssignmentStatus) []Edge
	// Statuses returns every status the policy can visit.
	Statuses() []enums.AssignmentStatus
}

// defaultPolicy implements the generic supplier workflow used by quote,
// order, installment and missing-part requests.
type defaultPolicy struct {
	requestType enums.RequestType
}

func (p defaultPolicy) RequestType() enums.RequestType {
	return p.requestType
}

func (p defaultPolicy) Next(from enums.AssignmentStatus) []Edge {
	var edges []Edge
	switch from {
	case enums.AssignmentStatusNew:
		edges = []Edge{
			{To: enums.AssignmentStatusAccepted},
			{To: enums.AssignmentStatusRejected, NotesRequired: true},
		}
	case enums.AssignmentStatusAccepted:
		edges = []Edge{{To: enums.AssignmentStatusInProgress}}
	case enums.AssignmentStatusInProgress:
		edges = []Edge{{To: enums.AssignmentStatusShipped}}
	default:
		return nil
	}
	return append(edges, Edge{To: enums.AssignmentStatusCancelled, AdminOnly: true})
}

func (p defaultPolicy) Statuses() []enums.AssignmentStatus {
	return []enums.AssignmentStatus{
		enums.AssignmentStatusNew,
		enums.AssignmentStatusAccepted,
		enums.AssignmentStatusInProgress,
		enums.AssignmentStatusShipped,
		enums.AssignmentStatusRejected,
		enums.AssignmentStatusCancelled,
	}
}

// importChain is the linear sequence the admin import desk walks through.
var importChain = []enums.AssignmentStatus{
	enums.AssignmentStatusNew,
	enums.AssignmentStatusUnderReview,
	enums.AssignmentStatusWaitingCustomerExcel,
	enums.AssignmentStatusPricingInProgress,
	enums.AssignmentStatusPricingSent,
	enums.AssignmentStatusWaitingCustomerApproval,
	enums.AssignmentStatusApprovedByCustomer,
	enums.AssignmentStatusInFactory,
	enums.AssignmentStatusShipmentBooked,
	enums.AssignmentStatusOnTheSea,
	enums.AssignmentStatusInPort,
	enums.AssignmentStatusCustomsCleared,
	enums.AssignmentStatusOnTheWay,
	enums.AssignmentStatusDelivered,
}

// importPolicy implements the extended linear import workflow.
type importPolicy struct{}

func (importPolicy) RequestType() enums.RequestType {
	return enums.RequestTypeImport
}

func (importPolicy) Next(from enums.AssignmentStatus) []Edge {
	for i, status := range importChain {
		if status != from {
			continue
		}
		if i == len(importChain)-1 {
			return nil
		}
		return []Edge{
			{To: importChain[i+1]},
			{To: enums.AssignmentStatusCancelled, AdminOnly: true},
		}
	}
	return nil
}

func (importPolicy) Statuses() []enums.AssignmentStatus {
	statuses := make([]enums.AssignmentStatus, len(importChain))
	copy(statuses, importChain)
	return append(statuses, enums.AssignmentStatusCancelled)
}

var policiesByType = map[enums.RequestType]Policy{
	enums.RequestTypeQuote:       defaultPolicy{requestType: enums.RequestTypeQuote},
	enums.RequestTypeOrder:       defaultPolicy{requestType: enums.RequestTypeOrder},
	enums.RequestTypeInstallment: defaultPolicy{requestType: enums.RequestTypeInstallment},
	enums.RequestTypeMissing:     defaultPolicy{requestType: enums.RequestTypeMissing},
	enums.RequestTypeImport:      importPolicy{},
}

// PolicyFor returns the transition policy for a request type. Unknown types
// fall back to the generic workflow so a bad row can still be cancelled.
func PolicyFor(requestType enums.RequestType) Policy {
	if policy, ok := policiesByType[requestType]; ok {
		return policy
	}
	return defaultPolicy{requestType: requestType}
}

// Lookup finds the edge for (requestType, from, to) if one exists.
func Lookup(requestType enums.RequestType, from, to enums.AssignmentStatus) (Edge, bool) {
	for _, edge := range PolicyFor(requestType).Next(from) {
		if edge.To == to {
			return edge, true
		}
	}
	return Edge{}, false
}

// IsLegalTransition reports whether (from -> to) is defined for the request
// type, regardless of role.
func IsLegalTransition(requestType enums.RequestType, from, to enums.AssignmentStatus) bool {
	_, ok := Lookup(requestType, from, to)
	return ok
}

// AllowedNext lists the statuses the actor may move to from the current one.
// Callers surface this set on rejected transitions so clients can self-correct.
func AllowedNext(requestType enums.RequestType, from enums.AssignmentStatus, role enums.ActorRole) []enums.AssignmentStatus {
	edges := PolicyFor(requestType).Next(from)
	allowed := make([]enums.AssignmentStatus, 0, len(edges))
	for _, edge := range edges {
		if edge.AdminOnly && role != enums.ActorRoleAdmin {
			continue
		}
		allowed = append(allowed, edge.To)
	}
	return allowed
}
