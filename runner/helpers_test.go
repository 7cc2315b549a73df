package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/sitehealth/discovery"
	"github.com/jonwraymond/sitehealth/health"
)

// stubCheck returns a fixed status, or err, or panics.
type stubCheck struct {
	health.Base
	status health.Status
	err    error
	panic  any
	delay  time.Duration
	// stubborn checks sleep through delay without watching ctx.
	stubborn bool
	calls    atomic.Int32
}

func newStub(provider, name, category string, status health.Status) *stubCheck {
	return &stubCheck{
		Base:   health.NewBase(provider, name, category, name),
		status: status,
	}
}

func (c *stubCheck) Perform(ctx context.Context) (health.Result, error) {
	c.calls.Add(1)
	if c.delay > 0 && c.stubborn {
		time.Sleep(c.delay)
	} else if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return health.Result{}, ctx.Err()
		}
	}
	if c.panic != nil {
		panic(c.panic)
	}
	if c.err != nil {
		return health.Result{}, c.err
	}
	switch c.status {
	case health.StatusCritical:
		return c.Critical("critical"), nil
	case health.StatusWarning:
		return c.Warning("warning"), nil
	}
	return c.Good("good"), nil
}

// spyDispatcher counts dispatches and serves a fixed contribution set.
type spyDispatcher struct {
	bus *discovery.Bus

	mu     sync.Mutex
	counts map[string]int
	fail   error
}

func newSpy(providers []health.ProviderMetadata, categories []health.Category, checks ...health.Check) *spyDispatcher {
	bus := discovery.NewBus()
	bus.OnCollectProviders(func(_ context.Context, e *discovery.CollectProvidersEvent) error {
		e.Add(providers...)
		return nil
	})
	bus.OnCollectCategories(func(_ context.Context, e *discovery.CollectCategoriesEvent) error {
		e.Add(categories...)
		return nil
	})
	bus.OnCollectChecks(func(_ context.Context, e *discovery.CollectChecksEvent) error {
		e.Add(checks...)
		return nil
	})
	return &spyDispatcher{bus: bus, counts: make(map[string]int)}
}

func (s *spyDispatcher) Dispatch(ctx context.Context, e discovery.Event) error {
	s.mu.Lock()
	s.counts[e.Name()]++
	fail := s.fail
	s.mu.Unlock()
	if fail != nil {
		return fail
	}
	return s.bus.Dispatch(ctx, e)
}

func (s *spyDispatcher) count(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[event]
}

func (s *spyDispatcher) failWith(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = errors.New("connection refused")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errBroken
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBroken
}

func (brokenCache) Delete(context.Context, string) error {
	return errBroken
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	var n atomic.Int32
	return func() string {
		return "report-" + string(rune('0'+n.Add(1)))
	}
}

// titlePanicCheck panics when asked for its title.
type titlePanicCheck struct {
	health.Base
}

func (c *titlePanicCheck) Title() string {
	panic("title lookup failed")
}

func (c *titlePanicCheck) Perform(context.Context) (health.Result, error) {
	return c.Good("unreachable"), nil
}
