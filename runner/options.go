package runner

import (
	"time"

	"github.com/jonwraymond/sitehealth/cache"
	"github.com/jonwraymond/sitehealth/observe"
	"github.com/jonwraymond/sitehealth/resilience"
)

// Options configures a Runner.
type Options struct {
	// Site scopes the report cache key.
	Site string

	// Parallel runs checks concurrently, at most MaxConcurrent at a time.
	// Default: sequential.
	Parallel      bool
	MaxConcurrent int

	// CheckTimeout bounds each check. Default: resilience.DefaultTimeout
	CheckTimeout time.Duration

	// PassTimeout bounds check execution for the whole pass. Zero means no
	// pass deadline.
	PassTimeout time.Duration

	Cache  cache.Cache
	Policy cache.Policy
	Keyer  cache.Keyer

	Middleware *observe.Middleware
	Logger     observe.Logger

	Now   func() time.Time
	NewID func() string
}

// Option mutates Options.
type Option func(*Options)

// WithSite sets the cache scope.
func WithSite(site string) Option {
	return func(o *Options) { o.Site = site }
}

// WithParallel enables concurrent execution with at most n checks in
// flight. n <= 0 leaves the count unbounded.
func WithParallel(n int) Option {
	return func(o *Options) {
		o.Parallel = true
		o.MaxConcurrent = n
	}
}

// WithCheckTimeout sets the per-check timeout.
func WithCheckTimeout(d time.Duration) Option {
	return func(o *Options) { o.CheckTimeout = d }
}

// WithPassTimeout sets the pass watchdog.
func WithPassTimeout(d time.Duration) Option {
	return func(o *Options) { o.PassTimeout = d }
}

// WithCache memoizes reports in c under policy. A nil c disables caching.
func WithCache(c cache.Cache, policy cache.Policy) Option {
	return func(o *Options) {
		o.Cache = c
		o.Policy = policy
	}
}

// WithKeyer replaces the cache key derivation.
func WithKeyer(k cache.Keyer) Option {
	return func(o *Options) { o.Keyer = k }
}

// WithMiddleware instruments check execution.
func WithMiddleware(mw *observe.Middleware) Option {
	return func(o *Options) { o.Middleware = mw }
}

// WithLogger sets the pass logger. Default: the middleware's logger.
func WithLogger(l observe.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

// WithIDGenerator replaces the report ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *Options) { o.NewID = gen }
}

func (o *Options) applyDefaults() {
	if o.Site == "" {
		o.Site = "default"
	}
	if o.CheckTimeout <= 0 {
		o.CheckTimeout = resilience.DefaultTimeout
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Middleware == nil {
		o.Middleware = observe.NewMiddleware(nil, nil, o.Logger)
	}
	if o.Logger == nil {
		o.Logger = o.Middleware.Logger()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}
