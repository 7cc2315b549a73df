// Package checks contains the built-in "core" health-check provider.
//
// CorePlugin subscribes to a discovery bus and contributes the core provider
// metadata and one check per concern: database connectivity and latency,
// monitoring agent presence, memory pressure, temporary directory and
// configuration file hygiene, the shared cache backend, and reachability of
// configured network endpoints.
package checks
