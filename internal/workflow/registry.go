package workflow

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// StatusInfo carries display metadata for one assignment status.
type StatusInfo struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
	Tag   string `json:"tag"`
}

var statusInfoByCode = map[enums.AssignmentStatus]StatusInfo{
	enums.AssignmentStatusNew:        {Label: "New", Tone: "blue", Tag: "inbox"},
	enums.AssignmentStatusAccepted:   {Label: "Accepted", Tone: "green", Tag: "check"},
	enums.AssignmentStatusInProgress: {Label: "In Progress", Tone: "amber", Tag: "wrench"},
	enums.AssignmentStatusShipped:    {Label: "Shipped", Tone: "green", Tag: "truck"},
	enums.AssignmentStatusRejected:   {Label: "Rejected", Tone: "red", Tag: "x-circle"},
	enums.AssignmentStatusCancelled:  {Label: "Cancelled", Tone: "gray", Tag: "ban"},

	enums.AssignmentStatusUnderReview:             {Label: "Under Review", Tone: "blue", Tag: "eye"},
	enums.AssignmentStatusWaitingCustomerExcel:    {Label: "Waiting Customer Excel", Tone: "amber", Tag: "file-spreadsheet"},
	enums.AssignmentStatusPricingInProgress:       {Label: "Pricing In Progress", Tone: "amber", Tag: "calculator"},
	enums.AssignmentStatusPricingSent:             {Label: "Pricing Sent", Tone: "blue", Tag: "send"},
	enums.AssignmentStatusWaitingCustomerApproval: {Label: "Waiting Customer Approval", Tone: "amber", Tag: "hourglass"},
	enums.AssignmentStatusApprovedByCustomer:      {Label: "Approved By Customer", Tone: "green", Tag: "thumbs-up"},
	enums.AssignmentStatusInFactory:               {Label: "In Factory", Tone: "amber", Tag: "factory"},
	enums.AssignmentStatusShipmentBooked:          {Label: "Shipment Booked", Tone: "blue", Tag: "calendar"},
	enums.AssignmentStatusOnTheSea:                {Label: "On The Sea", Tone: "blue", Tag: "ship"},
	enums.AssignmentStatusInPort:                  {Label: "In Port", Tone: "blue", Tag: "anchor"},
	enums.AssignmentStatusCustomsCleared:          {Label: "Customs Cleared", Tone: "green", Tag: "stamp"},
	enums.AssignmentStatusOnTheWay:                {Label: "On The Way", Tone: "amber", Tag: "truck"},
	enums.AssignmentStatusDelivered:               {Label: "Delivered", Tone: "green", Tag: "package-check"},
}

var requestTypeLabels = map[enums.RequestType]string{
	enums.RequestTypeQuote:       "Quote Request",
	enums.RequestTypeOrder:       "Order",
	enums.RequestTypeInstallment: "Installment Plan",
	enums.RequestTypeImport:      "Import Request",
	enums.RequestTypeMissing:     "Missing Part Report",
}

// StatusInfoFor returns the registry entry for a status.
func StatusInfoFor(status enums.AssignmentStatus) (StatusInfo, bool) {
	info, ok := statusInfoByCode[status]
	return info, ok
}

// RequestTypeLabel returns the display label for a request type.
func RequestTypeLabel(requestType enums.RequestType) string {
	if label, ok := requestTypeLabels[requestType]; ok {
		return label
	}
	return string(requestType)
}

// ValidateRegistry checks the registry against every transition policy:
// each status a policy can visit must have display metadata, each edge must
// target a known status, and terminal statuses must have no outgoing edges.
// Run at startup and in tests.
func ValidateRegistry() error {
	var result error
	for _, requestType := range enums.RequestTypes() {
		policy := PolicyFor(requestType)
		for _, status := range policy.Statuses() {
			if !status.IsValid() {
				result = multierr.Append(result, fmt.Errorf("%s: policy visits unknown status %q", requestType, status))
				continue
			}
			if _, ok := statusInfoByCode[status]; !ok {
				result = multierr.Append(result, fmt.Errorf("%s: status %q has no registry entry", requestType, status))
			}
			edges := policy.Next(status)
			if status.IsTerminal() && len(edges) > 0 {
				result = multierr.Append(result, fmt.Errorf("%s: terminal status %q has outgoing edges", requestType, status))
			}
			for _, edge := range edges {
				if _, ok := statusInfoByCode[edge.To]; !ok {
					result = multierr.Append(result, fmt.Errorf("%s: edge %s -> %s targets unregistered status", requestType, status, edge.To))
				}
			}
		}
		if _, ok := requestTypeLabels[requestType]; !ok {
			result = multierr.Append(result, fmt.Errorf("request type %q has no label", requestType))
		}
	}
	return result
}
