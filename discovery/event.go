package discovery

import (
	"sync"

	"github.com/jonwraymond/sitehealth/health"
)

// Event names.
const (
	EventCollectProviders  = "CollectProviders"
	EventCollectCategories = "CollectCategories"
	EventCollectChecks     = "CollectChecks"
)

// Event is a discovery round published by a Dispatcher.
type Event interface {
	Name() string
}

// collector is an append-only list safe for concurrent Add.
type collector[T any] struct {
	mu    sync.Mutex
	items []T
}

func (c *collector[T]) add(items ...T) {
	c.mu.Lock()
	c.items = append(c.items, items...)
	c.mu.Unlock()
}

func (c *collector[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// CollectProvidersEvent gathers provider metadata.
type CollectProvidersEvent struct {
	collector[health.ProviderMetadata]
}

// NewCollectProvidersEvent creates an empty event.
func NewCollectProvidersEvent() *CollectProvidersEvent {
	return &CollectProvidersEvent{}
}

// Name returns EventCollectProviders.
func (e *CollectProvidersEvent) Name() string { return EventCollectProviders }

// Add appends providers to the event result.
func (e *CollectProvidersEvent) Add(providers ...health.ProviderMetadata) { e.add(providers...) }

// Items returns the providers collected so far.
func (e *CollectProvidersEvent) Items() []health.ProviderMetadata { return e.snapshot() }

// CollectCategoriesEvent gathers categories.
type CollectCategoriesEvent struct {
	collector[health.Category]
}

// NewCollectCategoriesEvent creates an empty event.
func NewCollectCategoriesEvent() *CollectCategoriesEvent {
	return &CollectCategoriesEvent{}
}

// Name returns EventCollectCategories.
func (e *CollectCategoriesEvent) Name() string { return EventCollectCategories }

// Add appends categories to the event result.
func (e *CollectCategoriesEvent) Add(categories ...health.Category) { e.add(categories...) }

// Items returns the categories collected so far.
func (e *CollectCategoriesEvent) Items() []health.Category { return e.snapshot() }

// CollectChecksEvent gathers check instances.
type CollectChecksEvent struct {
	collector[health.Check]
}

// NewCollectChecksEvent creates an empty event.
func NewCollectChecksEvent() *CollectChecksEvent {
	return &CollectChecksEvent{}
}

// Name returns EventCollectChecks.
func (e *CollectChecksEvent) Name() string { return EventCollectChecks }

// Add appends checks to the event result. Nil interface values are dropped;
// a typed nil pointer is kept and faults when the runner executes it.
func (e *CollectChecksEvent) Add(checks ...health.Check) {
	kept := make([]health.Check, 0, len(checks))
	for _, c := range checks {
		if c != nil {
			kept = append(kept, c)
		}
	}
	e.add(kept...)
}

// Items returns the checks collected so far.
func (e *CollectChecksEvent) Items() []health.Check { return e.snapshot() }
