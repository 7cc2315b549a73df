// Package observe instruments health check execution.
//
// It sets up OpenTelemetry tracing and metrics, provides a JSON-lines
// structured logger, and offers a Middleware that wraps a check runner so
// every execution gets a span, run counters, a duration histogram and a log
// line. Exporters are created by the exporters subpackage.
package observe
