package assignments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

func setupAssignmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	assignments := `
CREATE TABLE IF NOT EXISTS assignments (
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL,
  request_type TEXT NOT NULL,
  request_id TEXT NOT NULL,
  status TEXT NOT NULL,
  priority INTEGER NOT NULL DEFAULT 1,
  supplier_notes TEXT,
  quoted_total NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	auditEntries := `
CREATE TABLE IF NOT EXISTS audit_entries (
  id TEXT PRIMARY KEY,
  assignment_id TEXT NOT NULL,
  old_status TEXT NOT NULL,
  new_status TEXT NOT NULL,
  changed_by_role TEXT NOT NULL,
  notes TEXT,
  changed_at DATETIME
);`
	require.NoError(t, db.Exec(assignments).Error)
	require.NoError(t, db.Exec(auditEntries).Error)
	return db
}

func seedAssignment(t *testing.T, db *gorm.DB, supplierID uuid.UUID, requestType enums.RequestType, status enums.AssignmentStatus, createdAt time.Time) *models.Assignment {
	t.Helper()

	assignment := &models.Assignment{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		RequestType: requestType,
		RequestID:   "req_" + uuid.NewString()[:8],
		Status:      status,
		Priority:    enums.PriorityNormal,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func TestRepoCreateAndFind(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	assignment := seedAssignment(t, db, uuid.New(), enums.RequestTypeQuote, enums.AssignmentStatusNew, time.Now().UTC())

	found, err := repo.FindByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, assignment.ID, found.ID)
	assert.Equal(t, enums.AssignmentStatusNew, found.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoListFiltersAndPagination(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplierA := uuid.New()
	supplierB := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedAssignment(t, db, supplierA, enums.RequestTypeQuote, enums.AssignmentStatusNew, base.Add(time.Duration(i)*time.Minute))
	}
	seedAssignment(t, db, supplierB, enums.RequestTypeOrder, enums.AssignmentStatusAccepted, base.Add(10*time.Minute))

	rows, total, err := repo.List(ctx, ListFilter{Pagination: pagination.Params{Page: 1, Limit: 25}})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, rows, 4)

	// Newest first.
	assert.Equal(t, enums.RequestTypeOrder, rows[0].RequestType)

	quote := enums.RequestTypeQuote
	rows, total, err = repo.List(ctx, ListFilter{RequestType: &quote, Pagination: pagination.Params{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.List(ctx, ListFilter{RequestType: &quote, Pagination: pagination.Params{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 1)

	accepted := enums.AssignmentStatusAccepted
	rows, total, err = repo.List(ctx, ListFilter{Status: &accepted, SupplierID: &supplierB, Pagination: pagination.Params{Page: 1, Limit: 25}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, supplierB, rows[0].SupplierID)

	rows, total, err = repo.List(ctx, ListFilter{Status: &accepted, SupplierID: &supplierA, Pagination: pagination.Params{Page: 1, Limit: 25}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, rows)
}

func TestRepoGuardedStatusUpdate(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	assignment := seedAssignment(t, db, uuid.New(), enums.RequestTypeQuote, enums.AssignmentStatusNew, time.Now().UTC())

	now := time.Now().UTC()
	affected, err := repo.UpdateStatusFrom(ctx, assignment.ID, enums.AssignmentStatusNew, map[string]any{
		"status":     enums.AssignmentStatusAccepted,
		"updated_at": now,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// The guard no longer matches, so a second identical update is a no-op.
	affected, err = repo.UpdateStatusFrom(ctx, assignment.ID, enums.AssignmentStatusNew, map[string]any{
		"status":     enums.AssignmentStatusRejected,
		"updated_at": now,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	found, err := repo.FindByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AssignmentStatusAccepted, found.Status)
}

func TestRepoUpdatePriority(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	assignment := seedAssignment(t, db, uuid.New(), enums.RequestTypeMissing, enums.AssignmentStatusNew, time.Now().UTC())

	affected, err := repo.UpdatePriority(ctx, assignment.ID, enums.PriorityUrgent, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = repo.UpdatePriority(ctx, uuid.New(), enums.PriorityLow, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	found, err := repo.FindByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PriorityUrgent, found.Priority)
}

func TestRepoAuditOrdering(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	assignment := seedAssignment(t, db, uuid.New(), enums.RequestTypeOrder, enums.AssignmentStatusShipped, time.Now().UTC())

	base := time.Now().UTC().Add(-time.Hour)
	steps := []struct {
		from enums.AssignmentStatus
		to   enums.AssignmentStatus
	}{
		{enums.AssignmentStatusNew, enums.AssignmentStatusAccepted},
		{enums.AssignmentStatusAccepted, enums.AssignmentStatusInProgress},
		{enums.AssignmentStatusInProgress, enums.AssignmentStatusShipped},
	}
	// Insert out of order to prove ordering comes from changed_at.
	for _, i := range []int{2, 0, 1} {
		entry := &models.AuditEntry{
			ID:            uuid.New(),
			AssignmentID:  assignment.ID,
			OldStatus:     steps[i].from,
			NewStatus:     steps[i].to,
			ChangedByRole: enums.ActorRoleSupplier,
			ChangedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AppendAudit(ctx, entry))
	}

	entries, err := repo.ListAudit(ctx, assignment.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, steps[i].from, entry.OldStatus)
		assert.Equal(t, steps[i].to, entry.NewStatus)
	}

	entries, err = repo.ListAudit(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepoBadgeCounts(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	watermark := time.Now().UTC().Add(-30 * time.Minute)
	before := watermark.Add(-time.Hour)
	after := watermark.Add(time.Minute)

	seedAssignment(t, db, uuid.New(), enums.RequestTypeQuote, enums.AssignmentStatusNew, before)
	seedAssignment(t, db, uuid.New(), enums.RequestTypeQuote, enums.AssignmentStatusNew, after)
	seedAssignment(t, db, uuid.New(), enums.RequestTypeQuote, enums.AssignmentStatusNew, after)
	order := seedAssignment(t, db, uuid.New(), enums.RequestTypeOrder, enums.AssignmentStatusRejected, after)

	count, err := repo.CountCreatedAfter(ctx, enums.RequestTypeQuote, watermark)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountCreatedAfter(ctx, enums.RequestTypeImport, watermark)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	reason := "shortage"
	require.NoError(t, repo.AppendAudit(ctx, &models.AuditEntry{
		ID:            uuid.New(),
		AssignmentID:  order.ID,
		OldStatus:     enums.AssignmentStatusNew,
		NewStatus:     enums.AssignmentStatusRejected,
		ChangedByRole: enums.ActorRoleSupplier,
		Notes:         &reason,
		ChangedAt:     after,
	}))
	require.NoError(t, repo.AppendAudit(ctx, &models.AuditEntry{
		ID:            uuid.New(),
		AssignmentID:  order.ID,
		OldStatus:     enums.AssignmentStatusNew,
		NewStatus:     enums.AssignmentStatusRejected,
		ChangedByRole: enums.ActorRoleSupplier,
		ChangedAt:     before,
	}))

	count, err = repo.CountRejectionsAfter(ctx, enums.RequestTypeOrder, watermark)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountRejectionsAfter(ctx, enums.RequestTypeQuote, watermark)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = repo.CountOpen(ctx, enums.RequestTypeQuote)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// Rejected order is terminal and does not count as open.
	count, err = repo.CountOpen(ctx, enums.RequestTypeOrder)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
