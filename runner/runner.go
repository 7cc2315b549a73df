package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/sitehealth/cache"
	"github.com/jonwraymond/sitehealth/discovery"
	"github.com/jonwraymond/sitehealth/health"
	"github.com/jonwraymond/sitehealth/observe"
	"github.com/jonwraymond/sitehealth/resilience"
)

// ReportNamespace is the cache key namespace of encoded reports.
const ReportNamespace = "report"

var errEncode = errors.New("runner: encode report")

// Runner evaluates health checks contributed through a Dispatcher.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent RunAll calls that
//     miss the cache share one evaluation.
//   - Errors: check faults never surface as errors. Discovery and cache
//     failures are returned wrapped in ErrDiscovery and ErrCache.
type Runner struct {
	dispatcher discovery.Dispatcher
	opts       Options
	memo       *cache.Memo
	timeout    *resilience.Timeout
	run        observe.RunFunc
}

// New creates a runner that discovers checks through d.
func New(d discovery.Dispatcher, opts ...Option) *Runner {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.applyDefaults()
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}

	return &Runner{
		dispatcher: d,
		opts:       o,
		memo:       cache.NewMemo(o.Cache, o.Policy),
		timeout:    resilience.NewTimeout(resilience.TimeoutConfig{Timeout: o.CheckTimeout}),
		run:        o.Middleware.Wrap(health.Execute),
	}
}

// CacheEnabled reports whether reports are memoized.
func (r *Runner) CacheEnabled() bool {
	return r.memo.Enabled()
}

// CacheKey returns the key the report is cached under.
func (r *Runner) CacheKey() (string, error) {
	return r.opts.Keyer.Key(ReportNamespace, map[string]any{"site": r.opts.Site})
}

// RunAll returns the health report. Unless force is set or caching is
// disabled, a cached report younger than the policy TTL is returned without
// dispatching any discovery event.
func (r *Runner) RunAll(ctx context.Context, force bool) (*Report, error) {
	if r.dispatcher == nil {
		return nil, ErrNotConfigured
	}
	start := time.Now()

	key, err := r.CacheKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}

	data, hit, err := r.memo.Do(ctx, key, force, r.load)
	if err != nil {
		return nil, r.classify(err)
	}

	rep := &Report{}
	if err := json.Unmarshal(data, rep); err != nil {
		if !hit {
			return nil, fmt.Errorf("runner: decode report: %w", err)
		}
		r.opts.Logger.Warn(ctx, "discarding undecodable cached report", observe.F("error", err))
		return r.RunAll(ctx, true)
	}
	rep.Cached = hit

	r.opts.Middleware.Metrics().RecordPass(ctx, rep.Status, hit, time.Since(start))
	r.opts.Logger.Info(ctx, "health report ready",
		observe.F("report.id", rep.ID),
		observe.F("status", rep.Status.String()),
		observe.F("checks", rep.Counts.Total()),
		observe.F("cached", hit),
		observe.F("duration_ms", time.Since(start).Milliseconds()),
	)
	return rep, nil
}

// Invalidate removes the cached report.
func (r *Runner) Invalidate(ctx context.Context) error {
	key, err := r.CacheKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	if err := r.memo.Invalidate(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

// Catalog is what discovery contributed in one pass.
type Catalog struct {
	Categories *health.CategoryRegistry
	Providers  *health.ProviderRegistry
	Checks     []health.Check
}

// Discover dispatches the discovery events and builds fresh registries.
// The built-in categories are always present.
func (r *Runner) Discover(ctx context.Context) (*Catalog, error) {
	if r.dispatcher == nil {
		return nil, ErrNotConfigured
	}

	collected, err := discovery.Collect(ctx, r.dispatcher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	cat := &Catalog{
		Categories: health.NewCategoryRegistry(),
		Providers:  health.NewProviderRegistry(),
		Checks:     collected.Checks,
	}
	for _, c := range collected.Categories {
		cat.Categories.Register(c)
	}
	for _, p := range collected.Providers {
		cat.Providers.Register(p)
	}
	return cat, nil
}

// Evaluate runs one uncached pass.
func (r *Runner) Evaluate(ctx context.Context) (*Report, error) {
	cat, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}

	results := r.execute(ctx, cat.Checks)
	return buildReport(r.opts.NewID(), r.opts.Now(), results, cat.Categories, cat.Providers), nil
}

func (r *Runner) load(ctx context.Context) ([]byte, error) {
	rep, err := r.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errEncode, err)
	}
	return data, nil
}

// classify passes load failures through and marks everything else as a
// cache failure.
func (r *Runner) classify(err error) error {
	if errors.Is(err, ErrDiscovery) || errors.Is(err, errEncode) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCache, err)
}

// execute runs every check and returns results in check order.
func (r *Runner) execute(ctx context.Context, checks []health.Check) []health.Result {
	if r.opts.PassTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.PassTimeout)
		defer cancel()
	}

	results := make([]health.Result, len(checks))
	if !r.opts.Parallel {
		for i, check := range checks {
			results[i] = r.runOne(ctx, check)
		}
		return results
	}

	var g errgroup.Group
	if r.opts.MaxConcurrent > 0 {
		g.SetLimit(r.opts.MaxConcurrent)
	}
	for i, check := range checks {
		g.Go(func() error {
			results[i] = r.runOne(ctx, check)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

type outcome struct {
	result health.Result
	fault  error
}

// runOne executes a check under the per-check timeout. A check whose identity
// cannot be read, that panics outside Perform, or that misses its deadline or
// the pass deadline becomes a Warning.
func (r *Runner) runOne(ctx context.Context, check health.Check) health.Result {
	id, err := health.Identify(check)
	if err != nil {
		return r.abandon(ctx, id, err)
	}

	out, err := resilience.CallWithin(ctx, r.timeout, func(ctx context.Context) (out outcome, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%w: %v", health.ErrCheckPanicked, rec)
			}
		}()

		res, fault := r.run(ctx, check)
		if fault != nil && ctx.Err() != nil {
			return outcome{}, ctx.Err()
		}
		return outcome{result: res, fault: fault}, nil
	})
	if err == nil {
		return out.result
	}

	if errors.Is(err, resilience.ErrTimeout) {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: pass deadline exceeded", health.ErrCheckTimeout)
		} else {
			err = fmt.Errorf("%w after %s", health.ErrCheckTimeout, r.timeout.Duration())
		}
	}
	return r.abandon(ctx, id, err)
}

// abandon logs fault and returns the Warning reported in place of the
// check's own result. id carries whatever identity could be read.
func (r *Runner) abandon(ctx context.Context, id health.Result, fault error) health.Result {
	meta := observe.CheckMeta{Slug: id.Slug, Provider: id.Provider, Category: id.Category, Title: id.Title}
	r.opts.Logger.WithCheck(meta).Warn(ctx, "health check abandoned", observe.F("error", fault))

	id.Description = health.FaultDescription(fault)
	id.Status = health.StatusWarning
	return id
}
