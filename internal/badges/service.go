package badges

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

// counters is the read surface the badge service needs from the
// assignment store.
type counters interface {
	CountCreatedAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error)
	CountRejectionsAfter(ctx context.Context, requestType enums.RequestType, after time.Time) (int64, error)
	CountOpen(ctx context.Context, requestType enums.RequestType) (int64, error)
}

// Counts holds unseen item counts keyed by badge category.
type Counts map[enums.BadgeCategory]int64

// Service computes and acknowledges per-session badge counts.
type Service interface {
	Counts(ctx context.Context, sessionID string) (Counts, error)
	MarkSeen(ctx context.Context, sessionID string, category enums.BadgeCategory) error
}

// ServiceParams configure the badge service.
type ServiceParams struct {
	Counters   counters
	Watermarks WatermarkStore
	Now        func() time.Time
}

type service struct {
	counters   counters
	watermarks WatermarkStore
	now        func() time.Time
}

// NewService builds a badge service.
func NewService(params ServiceParams) (Service, error) {
	if params.Counters == nil {
		return nil, fmt.Errorf("counters required")
	}
	if params.Watermarks == nil {
		return nil, fmt.Errorf("watermark store required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		counters:   params.Counters,
		watermarks: params.Watermarks,
		now:        now,
	}, nil
}

func (s *service) Counts(ctx context.Context, sessionID string) (Counts, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	counts := make(Counts, len(enums.BadgeCategories()))
	for _, category := range enums.BadgeCategories() {
		count, err := s.countCategory(ctx, sessionID, category)
		if err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, nil
}

func (s *service) countCategory(ctx context.Context, sessionID string, category enums.BadgeCategory) (int64, error) {
	watermark, _, err := s.watermarks.Get(ctx, sessionID, category)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading badge watermark")
	}

	var count int64
	if requestType, ok := category.RequestType(); ok {
		count, err = s.counters.CountCreatedAfter(ctx, requestType, watermark)
	} else {
		// orderShortages derives from supplier rejections of orders.
		count, err = s.counters.CountRejectionsAfter(ctx, enums.RequestTypeOrder, watermark)
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting badge items")
	}
	return count, nil
}

func (s *service) MarkSeen(ctx context.Context, sessionID string, category enums.BadgeCategory) error {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return err
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown badge category").
			WithDetails(map[string]any{"category": category})
	}
	if err := s.watermarks.Set(ctx, sessionID, category, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advancing badge watermark")
	}
	return nil
}

func normalizeSessionID(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return sessionID, nil
}
