package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

func TestDefaultPolicyHappyPath(t *testing.T) {
	assert.True(t, IsLegalTransition(enums.RequestTypeQuote, enums.AssignmentStatusNew, enums.AssignmentStatusAccepted))
	assert.True(t, IsLegalTransition(enums.RequestTypeQuote, enums.AssignmentStatusAccepted, enums.AssignmentStatusInProgress))
	assert.True(t, IsLegalTransition(enums.RequestTypeQuote, enums.AssignmentStatusInProgress, enums.AssignmentStatusShipped))
}

func TestDefaultPolicyRejectsSkippedEdges(t *testing.T) {
	assert.False(t, IsLegalTransition(enums.RequestTypeOrder, enums.AssignmentStatusNew, enums.AssignmentStatusShipped))
	assert.False(t, IsLegalTransition(enums.RequestTypeOrder, enums.AssignmentStatusNew, enums.AssignmentStatusInProgress))
	assert.False(t, IsLegalTransition(enums.RequestTypeOrder, enums.AssignmentStatusAccepted, enums.AssignmentStatusShipped))
}

func TestRejectionRequiresNotes(t *testing.T) {
	edge, ok := Lookup(enums.RequestTypeMissing, enums.AssignmentStatusNew, enums.AssignmentStatusRejected)
	require.True(t, ok)
	assert.True(t, edge.NotesRequired)

	edge, ok = Lookup(enums.RequestTypeMissing, enums.AssignmentStatusNew, enums.AssignmentStatusAccepted)
	require.True(t, ok)
	assert.False(t, edge.NotesRequired)
}

func TestCancelIsAdminOnlyFromAnyNonTerminal(t *testing.T) {
	for _, from := range []enums.AssignmentStatus{
		enums.AssignmentStatusNew,
		enums.AssignmentStatusAccepted,
		enums.AssignmentStatusInProgress,
	} {
		edge, ok := Lookup(enums.RequestTypeOrder, from, enums.AssignmentStatusCancelled)
		require.True(t, ok, "cancel edge missing from %s", from)
		assert.True(t, edge.AdminOnly)
	}
}

func TestTerminalStatusesHaveNoEdges(t *testing.T) {
	for _, requestType := range enums.RequestTypes() {
		policy := PolicyFor(requestType)
		for _, status := range []enums.AssignmentStatus{
			enums.AssignmentStatusShipped,
			enums.AssignmentStatusRejected,
			enums.AssignmentStatusCancelled,
		} {
			assert.Empty(t, policy.Next(status), "%s should be terminal for %s", status, requestType)
		}
	}
	assert.Empty(t, PolicyFor(enums.RequestTypeImport).Next(enums.AssignmentStatusDelivered))
}

func TestImportPolicyWalksTheFullChain(t *testing.T) {
	policy := PolicyFor(enums.RequestTypeImport)

	current := enums.AssignmentStatusNew
	steps := 0
	for {
		edges := policy.Next(current)
		if len(edges) == 0 {
			break
		}
		// First edge is always the forward step, the cancel edge trails it.
		require.Len(t, edges, 2)
		assert.Equal(t, enums.AssignmentStatusCancelled, edges[1].To)
		assert.True(t, edges[1].AdminOnly)
		current = edges[0].To
		steps++
		require.Less(t, steps, 20, "import chain must terminate")
	}
	assert.Equal(t, enums.AssignmentStatusDelivered, current)
	assert.Equal(t, 13, steps)
}

func TestImportPolicyForbidsSkippingAhead(t *testing.T) {
	assert.False(t, IsLegalTransition(enums.RequestTypeImport, enums.AssignmentStatusWaitingCustomerExcel, enums.AssignmentStatusDelivered))
	assert.True(t, IsLegalTransition(enums.RequestTypeImport, enums.AssignmentStatusWaitingCustomerExcel, enums.AssignmentStatusPricingInProgress))
	// Generic statuses do not exist in the import chain.
	assert.False(t, IsLegalTransition(enums.RequestTypeImport, enums.AssignmentStatusNew, enums.AssignmentStatusAccepted))
}

func TestAllowedNextFiltersByRole(t *testing.T) {
	supplier := AllowedNext(enums.RequestTypeQuote, enums.AssignmentStatusNew, enums.ActorRoleSupplier)
	assert.ElementsMatch(t, []enums.AssignmentStatus{
		enums.AssignmentStatusAccepted,
		enums.AssignmentStatusRejected,
	}, supplier)

	admin := AllowedNext(enums.RequestTypeQuote, enums.AssignmentStatusNew, enums.ActorRoleAdmin)
	assert.ElementsMatch(t, []enums.AssignmentStatus{
		enums.AssignmentStatusAccepted,
		enums.AssignmentStatusRejected,
		enums.AssignmentStatusCancelled,
	}, admin)
}

func TestRegistryIsComplete(t *testing.T) {
	require.NoError(t, ValidateRegistry())
}

func TestStatusInfoLookup(t *testing.T) {
	info, ok := StatusInfoFor(enums.AssignmentStatusOnTheSea)
	require.True(t, ok)
	assert.Equal(t, "On The Sea", info.Label)

	_, ok = StatusInfoFor(enums.AssignmentStatus("NOT_A_STATUS"))
	assert.False(t, ok)
}

func TestRequestTypeLabel(t *testing.T) {
	assert.Equal(t, "Import Request", RequestTypeLabel(enums.RequestTypeImport))
	assert.Equal(t, "UNKNOWN", RequestTypeLabel(enums.RequestType("UNKNOWN")))
}
