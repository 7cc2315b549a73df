package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"stdout", "none", ""} {
		exp, err := NewTracingExporter(ctx, name, &bytes.Buffer{})
		if err != nil || exp == nil {
			t.Errorf("NewTracingExporter(%q) = %v, %v", name, exp, err)
			continue
		}
		_ = exp.Shutdown(ctx)
	}

	if _, err := NewTracingExporter(ctx, "jaeger", nil); err == nil {
		t.Error("NewTracingExporter(jaeger) error = nil, want unknown exporter")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"stdout", "none", ""} {
		reader, err := NewMetricsReader(ctx, name, &bytes.Buffer{})
		if err != nil || reader == nil {
			t.Errorf("NewMetricsReader(%q) = %v, %v", name, reader, err)
			continue
		}
		_ = reader.Shutdown(ctx)
	}

	if _, err := NewMetricsReader(ctx, "statsd", nil); err == nil {
		t.Error("NewMetricsReader(statsd) error = nil, want unknown exporter")
	}
}

func TestOTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	ctx := context.Background()

	if _, err := NewTracingExporter(ctx, "otlp", nil); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("tracing otlp error = %v, want ErrEndpointNotConfigured", err)
	}
	if _, err := NewMetricsReader(ctx, "otlp", nil); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("metrics otlp error = %v, want ErrEndpointNotConfigured", err)
	}
}
