package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/sitehealth/health"
)

// RunFunc executes one check and returns its result plus any fault that
// was converted into it. health.Execute has this signature.
type RunFunc func(ctx context.Context, check health.Check) (health.Result, error)

// Middleware wraps check execution with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a RunFunc safe for concurrent use.
//   - Errors: results and faults pass through unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced with
// no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NewTracer(noop.NewTracerProvider().Tracer("noop"))
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver builds a Middleware from an Observer's primitives.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Metrics returns the metrics sink, for pass-level recording.
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// Logger returns the logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap instruments fn.
func (m *Middleware) Wrap(fn RunFunc) RunFunc {
	return func(ctx context.Context, check health.Check) (health.Result, error) {
		meta := MetaOf(check)
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, fault := fn(ctx, check)
		elapsed := time.Since(start)

		m.tracer.EndSpan(span, result.Status, fault)
		m.metrics.RecordRun(ctx, meta, result.Status, elapsed, fault)

		log := m.logger.WithCheck(meta)
		fields := []Field{
			F("status", result.Status.String()),
			F("duration_ms", elapsed.Milliseconds()),
		}
		if fault != nil {
			log.Warn(ctx, "health check faulted", append(fields, F("error", fault))...)
		} else {
			log.Debug(ctx, "health check completed", fields...)
		}

		return result, fault
	}
}
