package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/oteladapters"
	"github.com/AntonStoeckl/lending-tracker-go/testutil/testdoubles"
)

func newInMemoryTracing() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, collector := newInMemoryTracing()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "lending.borrow_book", map[string]string{
		"book_id":   "book1",
		"reader_id": "u1",
	})
	spanCtx.AddAttribute("duration_ms", "0.12")
	collector.FinishSpan(spanCtx, "success", map[string]string{"available_copies": "0"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "lending.borrow_book", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "book_id", "book1")
	assertSpanHasAttribute(t, spans[0], "reader_id", "u1")
	assertSpanHasAttribute(t, spans[0], "duration_ms", "0.12")
	assertSpanHasAttribute(t, spans[0], "available_copies", "0")
	assertSpanHasAttribute(t, spans[0], "lending.outcome", "success")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "rejected", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "something_else", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter, collector := newInMemoryTracing()
			_, spanCtx := collector.StartSpan(context.Background(), "lending.return_book", nil)

			// act
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assertSpanHasAttribute(t, spans[0], "lending.outcome", tc.status)
		})
	}
}

func Test_TracingCollector_IgnoresForeignSpanContext(t *testing.T) {
	exporter, collector := newInMemoryTracing()

	assert.NotPanics(t, func() {
		collector.FinishSpan(&testdoubles.SpySpanContext{}, "success", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_TracingCollector_WithManager(t *testing.T) {
	// arrange
	ctx := context.Background()
	exporter, collector := newInMemoryTracing()
	manager, err := lending.NewManager(
		testdoubles.NewUserStatusOracleStub("u1"),
		testdoubles.NewNotifierSpy(),
		lending.WithTracing(collector),
	)
	require.NoError(t, err)

	// act
	require.NoError(t, manager.AddBook(ctx, lending.BookIDOf("book1"), 1))
	manager.BorrowBook(ctx, lending.BookIDOf("book1"), "u1")
	manager.ReturnBook(ctx, lending.BookIDOf("book1"), "u2")

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "lending.add_book", spans[0].Name)
	assert.Equal(t, "lending.borrow_book", spans[1].Name)
	assert.Equal(t, "lending.return_book", spans[2].Name)
	assertSpanHasAttribute(t, spans[1], "available_copies", "0")
	assertSpanHasAttribute(t, spans[2], "lending.outcome", "rejected")
	assertSpanHasAttribute(t, spans[2], "reader_id", "u2")
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expectedValue {
			return
		}
	}

	assert.Failf(t, "missing span attribute", "span %s should have attribute %s=%s", span.Name, key, expectedValue)
}
