package health

import (
	"sort"
	"sync"
)

// slugRegistry stores entries by slug. Registering an existing slug replaces
// the entry and keeps its original position.
type slugRegistry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
	order   []string // Maintains first-registration order
}

func newSlugRegistry[T any]() slugRegistry[T] {
	return slugRegistry[T]{
		entries: make(map[string]T),
		order:   make([]string, 0),
	}
}

func (r *slugRegistry[T]) register(slug string, entry T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[slug]; !exists {
		r.order = append(r.order, slug)
	}
	r.entries[slug] = entry
}

func (r *slugRegistry[T]) get(slug string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[slug]
	return entry, ok
}

func (r *slugRegistry[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.entries[slug])
	}
	return out
}

func (r *slugRegistry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// CategoryRegistry collects categories contributed during discovery.
//
// Duplicate slugs: the last registration wins, so a provider may override a
// built-in category's label or icon.
type CategoryRegistry struct {
	reg slugRegistry[Category]
}

// NewCategoryRegistry creates a registry seeded with BuiltinCategories.
func NewCategoryRegistry() *CategoryRegistry {
	r := NewEmptyCategoryRegistry()
	for _, c := range BuiltinCategories() {
		r.Register(c)
	}
	return r
}

// NewEmptyCategoryRegistry creates a registry without the built-in categories.
func NewEmptyCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{reg: newSlugRegistry[Category]()}
}

// Register adds c, replacing any category with the same slug.
func (r *CategoryRegistry) Register(c Category) {
	r.reg.register(c.Slug, c)
}

// Get returns the category with the given slug.
func (r *CategoryRegistry) Get(slug string) (Category, bool) {
	return r.reg.get(slug)
}

// All returns the categories sorted by SortOrder, ties broken by slug.
func (r *CategoryRegistry) All() []Category {
	out := r.reg.all()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Len returns the number of registered categories.
func (r *CategoryRegistry) Len() int {
	return r.reg.len()
}

// ProviderRegistry collects provider metadata contributed during discovery.
// It has no built-in entries and uses the same last-write-wins policy as
// CategoryRegistry.
type ProviderRegistry struct {
	reg slugRegistry[ProviderMetadata]
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{reg: newSlugRegistry[ProviderMetadata]()}
}

// Register adds p, replacing any provider with the same slug.
func (r *ProviderRegistry) Register(p ProviderMetadata) {
	r.reg.register(p.Slug, p)
}

// Get returns the provider with the given slug.
func (r *ProviderRegistry) Get(slug string) (ProviderMetadata, bool) {
	return r.reg.get(slug)
}

// All returns the providers in first-registration order.
func (r *ProviderRegistry) All() []ProviderMetadata {
	return r.reg.all()
}

// Len returns the number of registered providers.
func (r *ProviderRegistry) Len() int {
	return r.reg.len()
}
