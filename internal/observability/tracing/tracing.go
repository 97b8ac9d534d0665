package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/pushpak1497/swift"

// Init configures an OTLP HTTP exporter when endpoint is non-empty.
// Without an endpoint the global no-op provider stays in place.
func Init(ctx context.Context, logger *slog.Logger, endpoint, serviceName, environment string) (func(context.Context) error, error) {
	if endpoint == "" {
		logger.Info("tracing disabled: OTEL_EXPORTER_OTLP_ENDPOINT not set")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logger.Info("tracing initialized", slog.String("endpoint", endpoint))
	return tp.Shutdown, nil
}

// Tracer returns the service tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
