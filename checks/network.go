package checks

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/sitehealth/health"
)

// DefaultDialTimeout bounds each endpoint dial.
const DefaultDialTimeout = 3 * time.Second

// NetworkReachable dials the configured host:port endpoints, the services
// the site depends on.
type NetworkReachable struct {
	health.Base
	endpoints []string
	timeout   time.Duration
	dial      func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewNetworkReachable creates the core.network_reachable check.
func NewNetworkReachable(endpoints []string, timeout time.Duration) *NetworkReachable {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	d := &net.Dialer{}
	return &NetworkReachable{
		Base:      health.NewBase(ProviderSlug, "network_reachable", health.CategorySystem, "Network reachability"),
		endpoints: append([]string(nil), endpoints...),
		timeout:   timeout,
		dial:      d.DialContext,
	}
}

// Perform dials every endpoint concurrently.
func (c *NetworkReachable) Perform(ctx context.Context) (health.Result, error) {
	if len(c.endpoints) == 0 {
		return c.Good("No external services are configured."), nil
	}

	failed := make([]error, len(c.endpoints))
	var g errgroup.Group
	for i, addr := range c.endpoints {
		g.Go(func() error {
			dctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			conn, err := c.dial(dctx, "tcp", addr)
			if err != nil {
				failed[i] = err
				return nil
			}
			return conn.Close()
		})
	}
	_ = g.Wait()

	var down []string
	for i, err := range failed {
		if err != nil {
			down = append(down, c.endpoints[i])
		}
	}

	switch {
	case len(down) == 0:
		return c.Good(fmt.Sprintf("All %d configured services are reachable.", len(c.endpoints))), nil
	case len(down) == len(c.endpoints):
		return c.Critical("No configured service is reachable: " + strings.Join(down, ", ")), nil
	}
	return c.Warning(fmt.Sprintf("%d of %d configured services are unreachable: %s",
		len(down), len(c.endpoints), strings.Join(down, ", "))), nil
}
