package badges

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
)

func TestPollerRefreshSetsBacklogGauges(t *testing.T) {
	now := time.Now().UTC()
	counts := &stubCounters{
		openByType: map[enums.RequestType]int64{
			enums.RequestTypeQuote:   4,
			enums.RequestTypeImport:  2,
			enums.RequestTypeMissing: 0,
		},
		rejectionsByType: map[enums.RequestType][]time.Time{
			enums.RequestTypeOrder: {now.Add(-time.Hour), now.Add(-48 * time.Hour)},
		},
	}

	reg := prometheus.NewRegistry()
	poller, err := NewPoller(PollerParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Counters: counts,
		Metrics:  metrics.NewPollerMetrics(reg),
	})
	require.NoError(t, err)

	poller.refresh(context.Background())

	gauge := func(category string) float64 {
		mfs, gatherErr := reg.Gather()
		require.NoError(t, gatherErr)
		for _, mf := range mfs {
			if mf.GetName() != "badge_backlog" {
				continue
			}
			for _, metric := range mf.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "category" && label.GetValue() == category {
						return metric.GetGauge().GetValue()
					}
				}
			}
		}
		t.Fatalf("badge_backlog gauge missing category %q", category)
		return 0
	}
	assert.EqualValues(t, 4, gauge("quotes"))
	assert.EqualValues(t, 2, gauge("imports"))
	assert.EqualValues(t, 0, gauge("missing"))
	// Only the rejection inside the trailing day counts.
	assert.EqualValues(t, 1, gauge("orderShortages"))
}

func TestPollerDefaultsInterval(t *testing.T) {
	poller, err := NewPoller(PollerParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Counters: &stubCounters{},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultPollInterval, poller.interval)

	_, err = NewPoller(PollerParams{Counters: &stubCounters{}})
	assert.Error(t, err)

	_, err = NewPoller(PollerParams{Logger: logger.New(logger.Options{ServiceName: "test"})})
	assert.Error(t, err)
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	poller, err := NewPoller(PollerParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Counters: &stubCounters{},
		Interval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = poller.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
