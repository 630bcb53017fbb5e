// Package telemetry provides OpenTelemetry tracing for sampy runs.
//
// Tracing is off unless OTEL_EXPORTER_OTLP_ENDPOINT is set, in which case
// spans for each batch and tool run are exported over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies sampy in exported traces.
const ServiceName = "sampy"

// tracer starts as noop so packages can trace without Init being called.
var tracer trace.Tracer = noop.NewTracerProvider().Tracer(ServiceName)

// Tracer returns the tracer instrumented code should use.
func Tracer() trace.Tracer {
	return tracer
}

// Init installs an OTLP/HTTP tracer provider when
// OTEL_EXPORTER_OTLP_ENDPOINT is set and returns its shutdown function.
// Without an endpoint tracing stays noop; when the resource or exporter
// cannot be built a warning goes to stderr and tracing stays noop too.
func Init(version string) func(context.Context) error {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func(context.Context) error { return nil }
	}

	ctx := context.Background()
	res, err := newResource(ctx, version)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "sampy: tracing disabled: %v\n", err)
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "sampy: tracing disabled: %v\n", err)
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(ServiceName)

	return tp.Shutdown
}

// newResource describes this process. OTEL_RESOURCE_ATTRIBUTES is honored
// but cannot override the service name.
func newResource(ctx context.Context, version string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}
	return res, nil
}

// SetTracerProvider replaces the tracer, returning a function that restores
// the previous one. Tests use it to capture spans.
func SetTracerProvider(tp trace.TracerProvider) (restore func()) {
	prev := tracer
	tracer = tp.Tracer(ServiceName)
	return func() { tracer = prev }
}
