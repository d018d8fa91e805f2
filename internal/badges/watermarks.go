package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
)

// WatermarkStore persists per-session last-seen timestamps for badge buckets.
type WatermarkStore interface {
	// Get returns the stored watermark, or ok=false when the session has
	// never marked the category as seen.
	Get(ctx context.Context, sessionID string, category enums.BadgeCategory) (time.Time, bool, error)
	Set(ctx context.Context, sessionID string, category enums.BadgeCategory, at time.Time) error
}

type redisWatermarks struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWatermarkStore builds a Redis-backed watermark store. Watermarks expire
// with the admin session.
func NewWatermarkStore(client *redis.Client, ttl time.Duration) (WatermarkStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	return &redisWatermarks{client: client, ttl: ttl}, nil
}

func (s *redisWatermarks) Get(ctx context.Context, sessionID string, category enums.BadgeCategory) (time.Time, bool, error) {
	key := s.client.BadgeWatermarkKey(sessionID, category.String())
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("reading watermark %s: %w", key, err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing watermark %s: %w", key, err)
	}
	return at, true, nil
}

func (s *redisWatermarks) Set(ctx context.Context, sessionID string, category enums.BadgeCategory, at time.Time) error {
	key := s.client.BadgeWatermarkKey(sessionID, category.String())
	if err := s.client.Set(ctx, key, at.UTC().Format(time.RFC3339Nano), s.ttl); err != nil {
		return fmt.Errorf("writing watermark %s: %w", key, err)
	}
	return nil
}
