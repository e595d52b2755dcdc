package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/vectorbind/std/v1/logger"
)

// Tracer provides a simplified API for distributed tracing with OpenTelemetry.
// It wraps the OpenTelemetry TracerProvider and provides convenient methods for
// creating spans, recording errors, and propagating trace context across service
// boundaries.
//
// The Tracer is designed to be thread-safe and can be shared across goroutines.
type Tracer struct {
	tracer *trace.TracerProvider
	logger *logger.Logger
}

// NewClient creates and initializes a new Tracer instance with OpenTelemetry.
// It sets up the tracer provider with the provided configuration, configures
// the OTLP HTTP exporter if export is enabled, and sets the global
// OpenTelemetry tracer provider and propagators.
//
// If export is enabled but the exporter fails to initialize, the function logs
// a fatal error and terminates the application.
//
// Example:
//
//	cfg := tracer.Config{
//	    ServiceName:  "binding-sync",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}
//
//	tracerClient := tracer.NewClient(cfg, log)
//
//	ctx, span := tracerClient.StartSpan(context.Background(), "sync-bindings")
//	defer span.End()
func NewClient(cfg Config, log *logger.Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			log.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{tracer: tp, logger: log}
}
