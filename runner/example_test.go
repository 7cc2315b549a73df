package runner_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/sitehealth/cache"
	"github.com/jonwraymond/sitehealth/discovery"
	"github.com/jonwraymond/sitehealth/health"
	"github.com/jonwraymond/sitehealth/runner"
)

type diskCheck struct {
	health.Base
}

func (c diskCheck) Perform(context.Context) (health.Result, error) {
	return c.Warning("Free disk space is below 10%."), nil
}

func ExampleRunner_RunAll() {
	bus := discovery.NewBus()
	bus.OnCollectChecks(func(_ context.Context, e *discovery.CollectChecksEvent) error {
		e.Add(diskCheck{Base: health.NewBase("example", "disk_space", health.CategorySystem, "Disk space")})
		return nil
	})

	r := runner.New(bus, runner.WithCache(cache.NewMemoryCache(), cache.DefaultPolicy()))

	rep, _ := r.RunAll(context.Background(), false)
	fmt.Println(rep.Status, rep.Cached)
	for _, res := range rep.Results() {
		fmt.Println(res.Slug, res.Status)
	}

	rep, _ = r.RunAll(context.Background(), false)
	fmt.Println(rep.Status, rep.Cached)
	// Output:
	// warning false
	// example.disk_space warning
	// warning true
}
