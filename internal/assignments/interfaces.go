package assignments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// Repository exposes persistence helpers for assignments and their audit
// trail. The assignment store is the sole mutator of both tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, assignment *models.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	List(ctx context.Context, filter ListFilter) ([]models.Assignment, int64, error)

	// UpdateStatusFrom applies updates only while the row still holds
	// expectedStatus, and reports how many rows changed. Zero rows on an
	// existing assignment means a concurrent transition won.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, expectedStatus enums.AssignmentStatus, updates map[string]any) (int64, error)
	UpdatePriority(ctx context.Context, id uuid.UUID, priority enums.Priority, now time.Time) (int64, error)

	AppendAudit(ctx context.Context, entry *models.AuditEntry) error
	ListAudit(ctx context.Context, assignmentID uuid.UUID) ([]models.AuditEntry, error)

	// Badge feed reads. Consumers are read-only.
	CountCreatedAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error)
	CountRejectionsAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error)
	CountOpen(ctx context.Context, requestType enums.RequestType) (int64, error)
}
