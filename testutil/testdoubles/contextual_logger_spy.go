package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy is a lending.ContextualLogger implementation that captures log calls for testing.
type ContextualLoggerSpy struct {
	records []SpyContextualLogRecord
	mu      sync.Mutex
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		records: make([]SpyContextualLogRecord, 0),
	}
}

// DebugContext implements the lending.ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

// InfoContext implements the lending.ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

// WarnContext implements the lending.ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

// ErrorContext implements the lending.ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    args,
		Context: ctx,
	})
}

// GetRecords returns a copy of all captured records.
func (s *ContextualLoggerSpy) GetRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyContextualLogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// GetRecordsByLevel returns the captured records of the given level.
func (s *ContextualLoggerSpy) GetRecordsByLevel(level string) []SpyContextualLogRecord {
	var records []SpyContextualLogRecord
	for _, record := range s.GetRecords() {
		if record.Level == level {
			records = append(records, record)
		}
	}

	return records
}

// HasMessage reports whether any record of the given level carries exactly msg.
func (s *ContextualLoggerSpy) HasMessage(level string, msg string) bool {
	for _, record := range s.GetRecordsByLevel(level) {
		if record.Message == msg {
			return true
		}
	}

	return false
}

var _ lending.ContextualLogger = (*ContextualLoggerSpy)(nil)
