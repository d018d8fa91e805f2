package enums

import "fmt"

// AssignmentStatus tracks the lifecycle of a supplier assignment.
type AssignmentStatus string

const (
	AssignmentStatusNew        AssignmentStatus = "NEW"
	AssignmentStatusAccepted   AssignmentStatus = "ACCEPTED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusShipped    AssignmentStatus = "SHIPPED"
	AssignmentStatusRejected   AssignmentStatus = "REJECTED"
	AssignmentStatusCancelled  AssignmentStatus = "CANCELLED"

	// Import assignments move through an extended linear chain managed by
	// the admin import desk.
	AssignmentStatusUnderReview             AssignmentStatus = "UNDER_REVIEW"
	AssignmentStatusWaitingCustomerExcel    AssignmentStatus = "WAITING_CUSTOMER_EXCEL"
	AssignmentStatusPricingInProgress       AssignmentStatus = "PRICING_IN_PROGRESS"
	AssignmentStatusPricingSent             AssignmentStatus = "PRICING_SENT"
	AssignmentStatusWaitingCustomerApproval AssignmentStatus = "WAITING_CUSTOMER_APPROVAL"
	AssignmentStatusApprovedByCustomer      AssignmentStatus = "APPROVED_BY_CUSTOMER"
	AssignmentStatusInFactory               AssignmentStatus = "IN_FACTORY"
	AssignmentStatusShipmentBooked          AssignmentStatus = "SHIPMENT_BOOKED"
	AssignmentStatusOnTheSea                AssignmentStatus = "ON_THE_SEA"
	AssignmentStatusInPort                  AssignmentStatus = "IN_PORT"
	AssignmentStatusCustomsCleared          AssignmentStatus = "CUSTOMS_CLEARED"
	AssignmentStatusOnTheWay                AssignmentStatus = "ON_THE_WAY"
	AssignmentStatusDelivered               AssignmentStatus = "DELIVERED"
)

var validAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusNew,
	AssignmentStatusAccepted,
	AssignmentStatusInProgress,
	AssignmentStatusShipped,
	AssignmentStatusRejected,
	AssignmentStatusCancelled,
	AssignmentStatusUnderReview,
	AssignmentStatusWaitingCustomerExcel,
	AssignmentStatusPricingInProgress,
	AssignmentStatusPricingSent,
	AssignmentStatusWaitingCustomerApproval,
	AssignmentStatusApprovedByCustomer,
	AssignmentStatusInFactory,
	AssignmentStatusShipmentBooked,
	AssignmentStatusOnTheSea,
	AssignmentStatusInPort,
	AssignmentStatusCustomsCleared,
	AssignmentStatusOnTheWay,
	AssignmentStatusDelivered,
}

// String implements fmt.Stringer.
func (s AssignmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AssignmentStatus.
func (s AssignmentStatus) IsValid() bool {
	for _, candidate := range validAssignmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s AssignmentStatus) IsTerminal() bool {
	switch s {
	case AssignmentStatusShipped, AssignmentStatusRejected, AssignmentStatusCancelled, AssignmentStatusDelivered:
		return true
	default:
		return false
	}
}

// TerminalAssignmentStatuses returns the statuses that admit no transitions.
func TerminalAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentStatusShipped,
		AssignmentStatusRejected,
		AssignmentStatusCancelled,
		AssignmentStatusDelivered,
	}
}

// ParseAssignmentStatus converts raw input into an AssignmentStatus.
func ParseAssignmentStatus(value string) (AssignmentStatus, error) {
	for _, candidate := range validAssignmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment status %q", value)
}
