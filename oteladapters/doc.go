// Package oteladapters provides OpenTelemetry implementations of the lending observability interfaces.
//
// Wire them into a Manager like this:
//
//	manager, err := lending.NewManager(oracle, notifier,
//	    lending.WithContextualLogger(oteladapters.NewSlogBridgeLogger("lending")),
//	    lending.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("lending"))),
//	    lending.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("lending"))),
//	)
package oteladapters
