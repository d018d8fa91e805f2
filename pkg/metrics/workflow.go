package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics counts committed status transitions.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_transitions",
		Help: "Committed assignment status transitions.",
	}, []string{"request_type", "new_status"})
	reg.MustRegister(transitions)
	return &WorkflowMetrics{transitions: transitions}
}

// IncTransition counts one committed transition.
func (w *WorkflowMetrics) IncTransition(requestType, newStatus string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(normalizeLabel(requestType), normalizeLabel(newStatus)).Inc()
}
