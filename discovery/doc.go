// Package discovery collects health-check contributions from plugins.
//
// Discovery runs as three publish/subscribe rounds, always in this order:
//
//  1. CollectProviders: plugins add ProviderMetadata describing themselves.
//  2. CollectCategories: plugins add Category entries.
//  3. CollectChecks: plugins add Check instances.
//
// Each event carries an append-only collector. Any number of plugins can be
// subscribed to a Bus ahead of time; the Bus calls their handlers in
// subscription order and the caller reads the collected items afterwards.
//
//	bus := discovery.NewBus()
//	bus.Subscribe(checks.NewCorePlugin(opts))
//	bus.OnCollectChecks(func(ctx context.Context, e *discovery.CollectChecksEvent) error {
//	    e.Add(myCheck)
//	    return nil
//	})
//
//	collected, err := discovery.Collect(ctx, bus)
package discovery
