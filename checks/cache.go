package checks

import (
	"context"
	"fmt"

	"github.com/jonwraymond/sitehealth/health"
)

// CacheBackend pings the shared cache server.
type CacheBackend struct {
	health.Base
	client health.Optional[Pinger]
}

// NewCacheBackend creates the core.cache_backend check.
func NewCacheBackend(client health.Optional[Pinger]) *CacheBackend {
	return &CacheBackend{
		Base:   health.NewBase(ProviderSlug, "cache_backend", health.CategoryPerformance, "Cache backend"),
		client: client,
	}
}

// Perform sends PING. Without a shared backend, reports are cached in
// process memory and there is nothing to probe.
func (c *CacheBackend) Perform(ctx context.Context) (health.Result, error) {
	client, ok := c.client.Get()
	if !ok {
		return c.Good("Reports are cached in process memory; no cache server is configured."), nil
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return c.Critical(fmt.Sprintf("The cache server did not respond: %v", err)), nil
	}
	return c.Good("The cache server is responding."), nil
}
