package observe_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/sitehealth/health"
	"github.com/jonwraymond/sitehealth/observe"
)

type diskCheck struct{ health.Base }

func (c diskCheck) Perform(ctx context.Context) (health.Result, error) {
	return c.Good("The temporary directory is writable."), nil
}

func ExampleMiddleware_Wrap() {
	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, observe.Config{ServiceName: "sitehealth"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		panic(err)
	}

	run := mw.Wrap(health.Execute)
	res, _ := run(ctx, diskCheck{health.NewBase("core", "temp_writable", health.CategorySystem, "Temporary directory")})

	fmt.Println(res.Slug, res.Status)
	// Output: core.temp_writable good
}
