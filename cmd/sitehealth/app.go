package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"github.com/jonwraymond/sitehealth/cache"
	"github.com/jonwraymond/sitehealth/checks"
	"github.com/jonwraymond/sitehealth/config"
	"github.com/jonwraymond/sitehealth/discovery"
	"github.com/jonwraymond/sitehealth/health"
	"github.com/jonwraymond/sitehealth/observe"
	"github.com/jonwraymond/sitehealth/runner"
)

// app holds everything one command invocation needs.
type app struct {
	cfg        config.Config
	observer   observe.Observer
	bus        *discovery.Bus
	runner     *runner.Runner
	translator health.Translator

	closers []func() error
}

// openApp loads the configuration and wires collaborators, the core plugin
// and the runner. Logs and telemetry go to diag.
func openApp(ctx context.Context, cfgPath string, diag io.Writer) (_ *app, err error) {
	cfg, err := config.Load(ctx, cfgPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, bus: discovery.NewBus()}
	defer func() {
		if err != nil {
			_ = a.Close(ctx)
		}
	}()

	obsCfg := cfg.Observe
	obsCfg.Output = diag
	a.observer, err = observe.NewObserver(ctx, obsCfg)
	if err != nil {
		return nil, err
	}
	mw, err := observe.MiddlewareFromObserver(a.observer)
	if err != nil {
		return nil, err
	}

	deps := checks.Deps{
		Database:         health.None[health.Database](),
		Cache:            health.None[checks.Pinger](),
		LatencyThreshold: cfg.Database.LatencyThreshold,
		MonitoringDir:    cfg.Checks.MonitoringDir,
		TempDir:          cfg.Checks.TempDir,
		ConfigFile:       cfg.Checks.ConfigFile,
		Endpoints:        cfg.Checks.Endpoints,
		DialTimeout:      cfg.Checks.DialTimeout,
		MemoryWarning:    cfg.Checks.MemoryWarning,
		MemoryCritical:   cfg.Checks.MemoryCritical,
	}

	if cfg.Database.Driver != "" {
		db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
		}
		a.closers = append(a.closers, db.Close)
		deps.Database = health.Some[health.Database](db)
	}

	store, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}
	if client, ok := store.client.Get(); ok {
		deps.Cache = health.Some[checks.Pinger](client)
	}

	if err := a.bus.Subscribe(checks.NewCorePlugin(deps)); err != nil {
		return nil, err
	}

	opts := []runner.Option{
		runner.WithSite(cfg.Site.Name),
		runner.WithCheckTimeout(cfg.Runner.CheckTimeout),
		runner.WithPassTimeout(cfg.Runner.PassTimeout),
		runner.WithMiddleware(mw),
		runner.WithCache(store.cache, cache.PolicyFromSettings(cfg.Module.EnableCache, cfg.Module.CacheDuration)),
	}
	if cfg.Runner.Parallel {
		opts = append(opts, runner.WithParallel(cfg.Runner.MaxConcurrent))
	}
	a.runner = runner.New(a.bus, opts...)

	a.translator, err = health.NewCatalogTranslator(language.Make(cfg.Site.Language), nil)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// openedCache is the report cache plus the Redis client behind it, if any.
type openedCache struct {
	cache  cache.Cache
	client health.Optional[goredis.UniversalClient]
}

func (a *app) openCache(ctx context.Context) (openedCache, error) {
	switch a.cfg.Cache.Backend {
	case config.CacheNone:
		return openedCache{}, nil
	case config.CacheRedis:
		rc := a.cfg.Cache.Redis
		client, err := cache.DialRedis(ctx, cache.RedisConfig{
			URL:        rc.URL,
			Addrs:      rc.Addrs,
			MasterName: rc.MasterName,
			Username:   rc.Username,
			Password:   rc.Password,
			DB:         rc.DB,
		})
		if err != nil {
			return openedCache{}, err
		}
		a.closers = append(a.closers, client.Close)
		return openedCache{
			cache:  cache.NewResilientCache(cache.NewRedisCache(client, rc.KeyPrefix), nil),
			client: health.Some(client),
		}, nil
	}
	return openedCache{cache: cache.NewMemoryCache()}, nil
}

// Close releases collaborators in reverse order and flushes telemetry.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if a.observer != nil {
		if err := a.observer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// show returns the module's display filter.
func (a *app) show() runner.ShowOptions {
	return runner.ShowOptions{
		Critical: a.cfg.Module.ShowCritical,
		Warning:  a.cfg.Module.ShowWarning,
		Good:     a.cfg.Module.ShowGood,
	}
}
