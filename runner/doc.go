// Package runner evaluates every registered health check and aggregates the
// results into a Report.
//
// A pass dispatches the three discovery events, builds fresh category and
// provider registries, executes each check through the fault-isolating
// guard with a per-check timeout, and groups the results by category. The
// encoded report is memoized in a cache.Cache for the configured duration;
// RunAll with force set always evaluates and replaces the cached copy.
package runner
