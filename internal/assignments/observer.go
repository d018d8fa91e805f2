package assignments

import (
	"context"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
)

// MetricsObserver counts committed transitions on the workflow metrics.
type MetricsObserver struct {
	metrics *metrics.WorkflowMetrics
}

// NewMetricsObserver builds a transition observer backed by prometheus.
func NewMetricsObserver(m *metrics.WorkflowMetrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) StatusChanged(ctx context.Context, assignment *models.Assignment, entry *models.AuditEntry) {
	if o == nil || assignment == nil || entry == nil {
		return
	}
	o.metrics.IncTransition(assignment.RequestType.String(), entry.NewStatus.String())
}
