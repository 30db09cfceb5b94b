package lending

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	logMsgOperation         = "lending operation: "
	logMsgRejected          = "lending operation rejected: "
	logMsgRecordEventFailed = "failed to record domain event"
	logAttrError            = "error"
	logAttrReason           = "reason"
	logAttrBookID           = "book_id"
	logAttrReaderID         = "reader_id"
	logAttrQuantity         = "quantity"
	logAttrAvailableCopies  = "available_copies"
	logAttrEventType        = "event_type"

	spanNamePrefix         = "lending."
	spanAttrOperation      = "operation"
	spanAttrBookID         = "book_id"
	spanAttrReaderID       = "reader_id"
	spanAttrDurationMS     = "duration_ms"
	spanAttrAvailableCount = "available_copies"

	metricOperationDuration = "lending_operation_duration_seconds"
	metricOperationsTotal   = "lending_operations_total"
	metricAvailableCopies   = "lending_available_copies"
	labelOperation          = "operation"
	labelStatus             = "status"
	labelBookID             = "book_id"

	statusSuccess  = "success"
	statusRejected = "rejected"
)

// === Operation Observer Pattern ===
// The observer bundles span lifecycle and metrics recording of a single Manager operation.

type operationObserver struct {
	m         *Manager
	ctx       context.Context
	operation string
	span      SpanContext
	start     time.Time
	available *int
}

// startOperation starts the span of an operation if tracing is configured and returns the
// observer together with the (possibly span-carrying) context.
func (m *Manager) startOperation(
	ctx context.Context,
	operation string,
	bookID BookID,
	readerID ReaderIDString,
) (*operationObserver, context.Context) {

	var span SpanContext

	if m.tracingCollector != nil {
		attrs := map[string]string{
			spanAttrOperation: operation,
			spanAttrBookID:    bookID.String(),
		}

		if readerID != "" {
			attrs[spanAttrReaderID] = readerID
		}

		ctx, span = m.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
	}

	return &operationObserver{
		m:         m,
		ctx:       ctx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, ctx
}

// recordAvailableCopies records the count of a book after a successful state change.
func (o *operationObserver) recordAvailableCopies(bookID BookID, available int) {
	o.available = &available

	if o.m.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: o.operation,
		labelBookID:    bookID.String(),
	}

	if contextualCollector, ok := o.m.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(o.ctx, metricAvailableCopies, float64(available), labels)
	} else {
		o.m.metricsCollector.RecordValue(metricAvailableCopies, float64(available), labels)
	}
}

// finish records the duration and count metrics and completes the span with the given status.
func (o *operationObserver) finish(status string) {
	duration := time.Since(o.start)

	if o.m.metricsCollector != nil {
		labels := map[string]string{
			labelOperation: o.operation,
			labelStatus:    status,
		}

		// Use context-aware methods if available
		if contextualCollector, ok := o.m.metricsCollector.(ContextualMetricsCollector); ok {
			contextualCollector.RecordDurationContext(o.ctx, metricOperationDuration, duration, labels)
			contextualCollector.IncrementCounterContext(o.ctx, metricOperationsTotal, labels)
		} else {
			o.m.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
			o.m.metricsCollector.IncrementCounter(metricOperationsTotal, labels)
		}
	}

	if o.m.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(status)
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))

	attrs := map[string]string{}
	if o.available != nil {
		attrs[spanAttrAvailableCount] = fmt.Sprintf("%d", *o.available)
	}

	o.m.tracingCollector.FinishSpan(o.span, status, attrs)
}

// === Logging ===
// Both loggers are optional and independent, each configured one receives every message.

// logOperation logs a successful state change at info level.
func (m *Manager) logOperation(ctx context.Context, operation string, args ...any) {
	if m.logger != nil {
		m.logger.Info(logMsgOperation+operation, args...)
	}

	if m.contextualLogger != nil {
		m.contextualLogger.InfoContext(ctx, logMsgOperation+operation, args...)
	}
}

// logRejection logs a business rejection at debug level.
func (m *Manager) logRejection(ctx context.Context, operation string, reason string, args ...any) {
	allArgs := []any{logAttrReason, reason}
	allArgs = append(allArgs, args...)

	if m.logger != nil {
		m.logger.Debug(logMsgRejected+operation, allArgs...)
	}

	if m.contextualLogger != nil {
		m.contextualLogger.DebugContext(ctx, logMsgRejected+operation, allArgs...)
	}
}

// logWarning logs a non-critical failure at warn level.
func (m *Manager) logWarning(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if m.logger != nil {
		m.logger.Warn(message, allArgs...)
	}

	if m.contextualLogger != nil {
		m.contextualLogger.WarnContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
