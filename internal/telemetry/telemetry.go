package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 10 * time.Second

// Tracing holds the process tracer provider. A zero Tracing (no endpoint
// configured) has a nil Provider and a no-op Shutdown.
type Tracing struct {
	Provider trace.TracerProvider

	sdk *sdktrace.TracerProvider
}

// SetupTracing installs a global SDK tracer provider exporting spans over
// OTLP/HTTP to endpoint. An empty endpoint leaves tracing off.
func SetupTracing(ctx context.Context, endpoint string) (*Tracing, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return &Tracing{}, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create OTLP trace exporter: %w", err)
	}

	// The default resource picks up OTEL_SERVICE_NAME and OTEL_RESOURCE_ATTRIBUTES.
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracing{Provider: tp, sdk: tp}, nil
}

func (t *Tracing) Enabled() bool {
	return t != nil && t.sdk != nil
}

// Shutdown flushes pending spans. It is bounded by its own timeout so it can
// run from a SIGTERM hook.
func (t *Tracing) Shutdown() error {
	if !t.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := t.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}

	return nil
}
