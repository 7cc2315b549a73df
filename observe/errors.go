package observe

import (
	"errors"

	"github.com/jonwraymond/sitehealth/observe/exporters"
)

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// ErrNilObserver indicates a nil Observer was provided.
var ErrNilObserver = errors.New("observe: observer is nil")

// ErrEndpointNotConfigured indicates an OTLP exporter was requested without
// an endpoint in the environment.
var ErrEndpointNotConfigured = exporters.ErrEndpointNotConfigured

// RedactedFields lists field keys whose values never reach the log output.
// Database DSNs and Redis URLs routinely embed credentials.
var RedactedFields = []string{
	"password",
	"secret",
	"token",
	"dsn",
	"redis_url",
	"credential",
}
