package lending

import (
	"time"
)

// Option defines a functional option for configuring a Manager.
type Option func(*Manager) error

// WithLogger sets the logger for the Manager.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: rejected borrow and return attempts with the rejection reason
// Info level: every state change with the resulting available copies
// Warn level: event recorder failures.
func WithLogger(logger Logger) Option {
	return func(m *Manager) error {
		m.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Manager.
// It receives the same messages as the Logger, with the operation's context for trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(m *Manager) error {
		m.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Manager.
// It receives operation durations, operation counts by status, and available copies after each change.
func WithMetrics(collector MetricsCollector) Option {
	return func(m *Manager) error {
		m.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Manager.
// One span is started per AddBook, BorrowBook and ReturnBook call.
func WithTracing(collector TracingCollector) Option {
	return func(m *Manager) error {
		m.tracingCollector = collector
		return nil
	}
}

// WithEventRecorder sets the recorder that receives a domain event for every business outcome.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(m *Manager) error {
		m.eventRecorder = recorder
		return nil
	}
}

// WithClock sets the time source used to stamp domain events.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) error {
		if clock == nil {
			return ErrNilClock
		}

		m.clock = clock

		return nil
	}
}

// WithStrictValidation makes AddBook reject the absent or empty book identifier and negative quantities.
// Without it, AddBook accepts both, which keeps compatibility with the historical behavior.
func WithStrictValidation() Option {
	return func(m *Manager) error {
		m.strictValidation = true
		return nil
	}
}
