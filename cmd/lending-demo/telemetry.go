package main

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/oteladapters"
)

const (
	serviceName          = "lending-demo"
	serviceVersion       = "dev"
	instrumentationScope = "github.com/AntonStoeckl/lending-tracker-go"
	metricExportInterval = 5 * time.Second
	shutdownTimeout      = 5 * time.Second
)

// telemetry holds the OpenTelemetry providers of the demo run.
type telemetry struct {
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
}

// newTelemetry creates OTLP/gRPC exporting providers and registers them globally.
func newTelemetry(ctx context.Context, endpoint string) (*telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(endpoint), otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(trace.WithBatcher(traceExporter), trace.WithResource(res))
	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(metricExportInterval))),
		metric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &telemetry{tracerProvider: tracerProvider, meterProvider: meterProvider}, nil
}

// managerOptions returns the Manager options wiring the OpenTelemetry adapters.
func (t *telemetry) managerOptions() []lending.Option {
	return []lending.Option{
		lending.WithContextualLogger(oteladapters.NewSlogBridgeLogger(instrumentationScope)),
		lending.WithMetrics(oteladapters.NewMetricsCollector(t.meterProvider.Meter(instrumentationScope))),
		lending.WithTracing(oteladapters.NewTracingCollector(t.tracerProvider.Tracer(instrumentationScope))),
	}
}

// shutdown flushes and stops both providers.
func (t *telemetry) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(t.tracerProvider.Shutdown(ctx), t.meterProvider.Shutdown(ctx))
}
