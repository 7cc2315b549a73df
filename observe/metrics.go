package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/sitehealth/health"
)

// Metric names.
const (
	MetricRunTotal     = "healthcheck.run.total"
	MetricRunFaults    = "healthcheck.run.faults"
	MetricRunDuration  = "healthcheck.run.duration_ms"
	MetricPassTotal    = "healthcheck.pass.total"
	MetricPassDuration = "healthcheck.pass.duration_ms"
)

// Metrics records check and pass measurements.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: implementations must not panic.
type Metrics interface {
	// RecordRun records one check execution.
	RecordRun(ctx context.Context, meta CheckMeta, status health.Status, duration time.Duration, fault error)

	// RecordPass records one RunAll call; cached reports whether the report
	// was served from the cache.
	RecordPass(ctx context.Context, status health.Status, cached bool, duration time.Duration)
}

type otelMetrics struct {
	runTotal     metric.Int64Counter
	runFaults    metric.Int64Counter
	runDuration  metric.Float64Histogram
	passTotal    metric.Int64Counter
	passDuration metric.Float64Histogram
}

// NewMetrics registers the instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	m := &otelMetrics{}
	var err error

	if m.runTotal, err = meter.Int64Counter(MetricRunTotal,
		metric.WithDescription("Health check executions"),
		metric.WithUnit("{run}"),
	); err != nil {
		return nil, err
	}
	if m.runFaults, err = meter.Int64Counter(MetricRunFaults,
		metric.WithDescription("Health check executions that failed or panicked"),
		metric.WithUnit("{fault}"),
	); err != nil {
		return nil, err
	}
	if m.runDuration, err = meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Health check execution duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.passTotal, err = meter.Int64Counter(MetricPassTotal,
		metric.WithDescription("Health report requests"),
		metric.WithUnit("{pass}"),
	); err != nil {
		return nil, err
	}
	if m.passDuration, err = meter.Float64Histogram(MetricPassDuration,
		metric.WithDescription("Health report request duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *otelMetrics) RecordRun(ctx context.Context, meta CheckMeta, status health.Status, duration time.Duration, fault error) {
	opt := metric.WithAttributes(
		attribute.String("check.slug", meta.Slug),
		attribute.String("check.provider", meta.Provider),
		attribute.String("check.status", status.String()),
	)

	m.runTotal.Add(ctx, 1, opt)
	if fault != nil {
		m.runFaults.Add(ctx, 1, opt)
	}
	m.runDuration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *otelMetrics) RecordPass(ctx context.Context, status health.Status, cached bool, duration time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("report.status", status.String()),
		attribute.Bool("report.cached", cached),
	)

	m.passTotal.Add(ctx, 1, opt)
	m.passDuration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

type noopMetrics struct{}

func (noopMetrics) RecordRun(context.Context, CheckMeta, health.Status, time.Duration, error) {}
func (noopMetrics) RecordPass(context.Context, health.Status, bool, time.Duration)          {}
