package badges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type stubCounters struct {
	createdByType    map[enums.RequestType][]time.Time
	rejectionsByType map[enums.RequestType][]time.Time
	openByType       map[enums.RequestType]int64
	err              error
}

func (s *stubCounters) CountCreatedAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, at := range s.createdByType[requestType] {
		if at.After(after) {
			count++
		}
	}
	return count, nil
}

func (s *stubCounters) CountRejectionsAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, at := range s.rejectionsByType[requestType] {
		if at.After(after) {
			count++
		}
	}
	return count, nil
}

func (s *stubCounters) CountOpen(ctx context.Context, requestType enums.RequestType) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.openByType[requestType], nil
}

type memoryWatermarks struct {
	marks map[string]time.Time
	err   error
}

func newMemoryWatermarks() *memoryWatermarks {
	return &memoryWatermarks{marks: map[string]time.Time{}}
}

func (m *memoryWatermarks) key(sessionID string, category enums.BadgeCategory) string {
	return sessionID + ":" + category.String()
}

func (m *memoryWatermarks) Get(ctx context.Context, sessionID string, category enums.BadgeCategory) (time.Time, bool, error) {
	if m.err != nil {
		return time.Time{}, false, m.err
	}
	at, ok := m.marks[m.key(sessionID, category)]
	return at, ok, nil
}

func (m *memoryWatermarks) Set(ctx context.Context, sessionID string, category enums.BadgeCategory, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.marks[m.key(sessionID, category)] = at
	return nil
}

func newBadgeService(t *testing.T, counts *stubCounters, marks WatermarkStore, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Counters:   counts,
		Watermarks: marks,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc
}

func TestCountsWithoutWatermarkSeesEverything(t *testing.T) {
	now := time.Now().UTC()
	counts := &stubCounters{
		createdByType: map[enums.RequestType][]time.Time{
			enums.RequestTypeQuote: {now.Add(-2 * time.Hour), now.Add(-time.Minute)},
			enums.RequestTypeOrder: {now.Add(-time.Hour)},
		},
		rejectionsByType: map[enums.RequestType][]time.Time{
			enums.RequestTypeOrder: {now.Add(-30 * time.Minute)},
		},
	}
	svc := newBadgeService(t, counts, newMemoryWatermarks(), now)

	result, err := svc.Counts(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, result[enums.BadgeCategoryQuotes])
	assert.EqualValues(t, 1, result[enums.BadgeCategoryOrders])
	assert.EqualValues(t, 1, result[enums.BadgeCategoryOrderShortages])
	assert.EqualValues(t, 0, result[enums.BadgeCategoryImports])
	assert.EqualValues(t, 0, result[enums.BadgeCategoryAccounts])
	assert.EqualValues(t, 0, result[enums.BadgeCategoryMissing])
	assert.Len(t, result, len(enums.BadgeCategories()))
}

func TestMarkSeenZeroesTheCategory(t *testing.T) {
	now := time.Now().UTC()
	counts := &stubCounters{
		createdByType: map[enums.RequestType][]time.Time{
			enums.RequestTypeQuote: {now.Add(-2 * time.Hour), now.Add(-time.Minute)},
		},
	}
	marks := newMemoryWatermarks()
	svc := newBadgeService(t, counts, marks, now)
	ctx := context.Background()

	require.NoError(t, svc.MarkSeen(ctx, "sess-1", enums.BadgeCategoryQuotes))

	result, err := svc.Counts(ctx, "sess-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, result[enums.BadgeCategoryQuotes])

	// Items arriving after the mark count again.
	counts.createdByType[enums.RequestTypeQuote] = append(counts.createdByType[enums.RequestTypeQuote], now.Add(time.Minute))
	result, err = svc.Counts(ctx, "sess-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, result[enums.BadgeCategoryQuotes])
}

func TestWatermarksAreScopedPerSession(t *testing.T) {
	now := time.Now().UTC()
	counts := &stubCounters{
		createdByType: map[enums.RequestType][]time.Time{
			enums.RequestTypeMissing: {now.Add(-time.Minute)},
		},
	}
	svc := newBadgeService(t, counts, newMemoryWatermarks(), now)
	ctx := context.Background()

	require.NoError(t, svc.MarkSeen(ctx, "sess-1", enums.BadgeCategoryMissing))

	seen, err := svc.Counts(ctx, "sess-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, seen[enums.BadgeCategoryMissing])

	unseen, err := svc.Counts(ctx, "sess-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, unseen[enums.BadgeCategoryMissing])
}

func TestBadgeValidation(t *testing.T) {
	svc := newBadgeService(t, &stubCounters{}, newMemoryWatermarks(), time.Now().UTC())
	ctx := context.Background()

	_, err := svc.Counts(ctx, "   ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.MarkSeen(ctx, "", enums.BadgeCategoryOrders)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.MarkSeen(ctx, "sess-1", enums.BadgeCategory("everything"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestBadgeDependencyFailures(t *testing.T) {
	ctx := context.Background()

	svc := newBadgeService(t, &stubCounters{err: errors.New("db down")}, newMemoryWatermarks(), time.Now().UTC())
	_, err := svc.Counts(ctx, "sess-1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	marks := newMemoryWatermarks()
	marks.err = errors.New("redis down")
	svc = newBadgeService(t, &stubCounters{}, marks, time.Now().UTC())
	_, err = svc.Counts(ctx, "sess-1")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	err = svc.MarkSeen(ctx, "sess-1", enums.BadgeCategoryOrders)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}
