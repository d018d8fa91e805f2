package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
)

const (
	defaultPollInterval   = 30 * time.Second
	refreshInitialBackoff = 500 * time.Millisecond
	refreshMaximumBackoff = 5 * time.Second
	refreshMaxRetries     = 3
)

// PollerParams configure the badge backlog poller.
type PollerParams struct {
	Logger   *logger.Logger
	Counters counters
	Metrics  *metrics.PollerMetrics
	Interval time.Duration
}

// Poller refreshes per-category backlog gauges on a fixed cadence so
// dashboards and alerting see badge pressure without hitting the API.
type Poller struct {
	logg     *logger.Logger
	counters counters
	metrics  *metrics.PollerMetrics
	interval time.Duration
}

// NewPoller builds a badge poller.
func NewPoller(params PollerParams) (*Poller, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Counters == nil {
		return nil, fmt.Errorf("counters required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		logg:     params.Logger,
		counters: params.Counters,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run starts the poll loop until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logg.Info(ctx, "badge poller context canceled")
			return ctx.Err()
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	for _, category := range enums.BadgeCategories() {
		p.refreshCategory(ctx, category)
	}
}

func (p *Poller) refreshCategory(ctx context.Context, category enums.BadgeCategory) {
	catCtx := p.logg.WithField(ctx, "category", category.String())
	start := time.Now()

	backoff := retry.WithMaxRetries(refreshMaxRetries,
		retry.WithCappedDuration(refreshMaximumBackoff,
			retry.NewExponential(refreshInitialBackoff)))

	var count int64
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var countErr error
		count, countErr = p.countBacklog(ctx, category)
		if countErr != nil {
			return retry.RetryableError(countErr)
		}
		return nil
	})

	duration := time.Since(start)
	p.metrics.ObserveDuration(category.String(), duration)
	if err != nil {
		p.logg.Error(catCtx, "badge refresh failed", err)
		p.metrics.IncFailure(category.String())
		return
	}
	p.metrics.SetBacklog(category.String(), count)
	p.metrics.IncSuccess(category.String())
}

func (p *Poller) countBacklog(ctx context.Context, category enums.BadgeCategory) (int64, error) {
	if requestType, ok := category.RequestType(); ok {
		return p.counters.CountOpen(ctx, requestType)
	}
	// Shortages surface rejections from the last day.
	return p.counters.CountRejectionsAfter(ctx, enums.RequestTypeOrder, time.Now().UTC().Add(-24*time.Hour))
}
