package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/sitehealth/health"
)

// Dispatcher publishes discovery events to subscribers.
//
// Contract:
//   - Ordering: handlers run in subscription order, one at a time.
//   - Errors: the first handler failure stops the dispatch and is returned.
//   - Concurrency: implementations must be safe for concurrent use.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// Handler handles one discovery event.
type Handler func(ctx context.Context, e Event) error

// Plugin is anything subscribed to a Bus. It should also implement one or
// more of the contributor interfaces.
type Plugin interface {
	Name() string
}

// ProviderContributor contributes provider metadata.
type ProviderContributor interface {
	Plugin
	CollectProviders(ctx context.Context, e *CollectProvidersEvent) error
}

// CategoryContributor contributes categories.
type CategoryContributor interface {
	Plugin
	CollectCategories(ctx context.Context, e *CollectCategoriesEvent) error
}

// CheckContributor contributes checks.
type CheckContributor interface {
	Plugin
	CollectChecks(ctx context.Context, e *CollectChecksEvent) error
}

type subscription struct {
	source  string
	handler Handler
}

// Bus is the in-process Dispatcher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	plugins  []string
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscription)}
}

// Subscribe registers every contributor interface p implements.
func (b *Bus) Subscribe(p Plugin) error {
	if p == nil {
		return ErrNilPlugin
	}
	name := p.Name()

	if c, ok := p.(ProviderContributor); ok {
		b.Handle(EventCollectProviders, name, func(ctx context.Context, e Event) error {
			return c.CollectProviders(ctx, e.(*CollectProvidersEvent))
		})
	}
	if c, ok := p.(CategoryContributor); ok {
		b.Handle(EventCollectCategories, name, func(ctx context.Context, e Event) error {
			return c.CollectCategories(ctx, e.(*CollectCategoriesEvent))
		})
	}
	if c, ok := p.(CheckContributor); ok {
		b.Handle(EventCollectChecks, name, func(ctx context.Context, e Event) error {
			return c.CollectChecks(ctx, e.(*CollectChecksEvent))
		})
	}

	b.mu.Lock()
	b.plugins = append(b.plugins, name)
	b.mu.Unlock()
	return nil
}

// OnCollectProviders registers fn for the providers round.
func (b *Bus) OnCollectProviders(fn func(ctx context.Context, e *CollectProvidersEvent) error) {
	b.Handle(EventCollectProviders, "func", func(ctx context.Context, e Event) error {
		return fn(ctx, e.(*CollectProvidersEvent))
	})
}

// OnCollectCategories registers fn for the categories round.
func (b *Bus) OnCollectCategories(fn func(ctx context.Context, e *CollectCategoriesEvent) error) {
	b.Handle(EventCollectCategories, "func", func(ctx context.Context, e Event) error {
		return fn(ctx, e.(*CollectCategoriesEvent))
	})
}

// OnCollectChecks registers fn for the checks round.
func (b *Bus) OnCollectChecks(fn func(ctx context.Context, e *CollectChecksEvent) error) {
	b.Handle(EventCollectChecks, "func", func(ctx context.Context, e Event) error {
		return fn(ctx, e.(*CollectChecksEvent))
	})
}

// Handle registers h for the named event. Source identifies the subscriber in
// error messages.
func (b *Bus) Handle(event, source string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], subscription{source: source, handler: h})
}

// Plugins returns the names of subscribed plugins in subscription order.
func (b *Bus) Plugins() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, len(b.plugins))
	copy(out, b.plugins)
	return out
}

// Dispatch publishes e to its handlers.
func (b *Bus) Dispatch(ctx context.Context, e Event) error {
	switch e.(type) {
	case *CollectProvidersEvent, *CollectCategoriesEvent, *CollectChecksEvent:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, e)
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[e.Name()]))
	copy(subs, b.handlers[e.Name()])
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := invoke(ctx, sub.handler, e); err != nil {
			return fmt.Errorf("%w: %s from %q: %w", ErrHandlerFailed, e.Name(), sub.source, err)
		}
	}
	return nil
}

func invoke(ctx context.Context, h Handler, e Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return h(ctx, e)
}

// Collected holds everything contributed during one discovery pass.
type Collected struct {
	Providers  []health.ProviderMetadata
	Categories []health.Category
	Checks     []health.Check
}

// Collect dispatches the three discovery events in order and returns what
// was contributed.
func Collect(ctx context.Context, d Dispatcher) (Collected, error) {
	providers := NewCollectProvidersEvent()
	if err := d.Dispatch(ctx, providers); err != nil {
		return Collected{}, err
	}

	categories := NewCollectCategoriesEvent()
	if err := d.Dispatch(ctx, categories); err != nil {
		return Collected{}, err
	}

	checks := NewCollectChecksEvent()
	if err := d.Dispatch(ctx, checks); err != nil {
		return Collected{}, err
	}

	return Collected{
		Providers:  providers.Items(),
		Categories: categories.Items(),
		Checks:     checks.Items(),
	}, nil
}
