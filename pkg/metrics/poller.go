package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PollerMetrics records badge poller refresh cycles and the current backlog.
type PollerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	backlog  *prometheus.GaugeVec
}

// NewPollerMetrics registers the poller metrics on the provided registerer.
func NewPollerMetrics(reg prometheus.Registerer) *PollerMetrics {
	if reg == nil {
		return &PollerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "badge_refresh_duration_seconds",
		Help:    "Duration of badge refresh cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"category"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "badge_refresh_success",
		Help: "Successful badge refresh cycles.",
	}, []string{"category"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "badge_refresh_failure",
		Help: "Failed badge refresh cycles.",
	}, []string{"category"})
	backlog := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "badge_backlog",
		Help: "Open items per badge category as of the last refresh.",
	}, []string{"category"})
	reg.MustRegister(duration, success, failure, backlog)
	return &PollerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		backlog:  backlog,
	}
}

// ObserveDuration records the refresh duration for the named category.
func (p *PollerMetrics) ObserveDuration(category string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(category)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named category.
func (p *PollerMetrics) IncSuccess(category string) {
	if p == nil || p.success == nil {
		return
	}
	p.success.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncFailure increments the failure counter for the named category.
func (p *PollerMetrics) IncFailure(category string) {
	if p == nil || p.failure == nil {
		return
	}
	p.failure.WithLabelValues(normalizeLabel(category)).Inc()
}

// SetBacklog records the current open-item count for the named category.
func (p *PollerMetrics) SetBacklog(category string, count int64) {
	if p == nil || p.backlog == nil {
		return
	}
	p.backlog.WithLabelValues(normalizeLabel(category)).Set(float64(count))
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
