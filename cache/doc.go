// Package cache stores encoded health reports between evaluation passes.
//
// It provides a Cache interface with in-memory and Redis implementations,
// deterministic key derivation, TTL policies, a single-flight memoizer that
// collapses concurrent recomputation of the same key, and a wrapper that runs
// backend calls through retry and circuit-breaker protection.
package cache
