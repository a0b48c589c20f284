package tracer

import (
	"context"

	"report-automation-be/internal/config"
	"report-automation-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "report-automation-backend"

// InitTracer installs an OTLP HTTP tracer provider for the request spans
// produced by otelfiber. It returns the provider's shutdown function, or a
// no-op when tracing is disabled or the exporter cannot be created.
func InitTracer(cfg config.TracingConfig, sysLogger logger.ILogger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled {
		sysLogger.Debug("TRACER", "Tracing disabled", nil)
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(), // local collectors speak plain HTTP
	)
	if err != nil {
		sysLogger.Warn("TRACER", "Failed to create OTLP exporter, tracing disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	sysLogger.Info("TRACER", "OpenTelemetry tracer initialized", map[string]interface{}{
		"endpoint": cfg.Endpoint,
	})

	return tp.Shutdown
}
