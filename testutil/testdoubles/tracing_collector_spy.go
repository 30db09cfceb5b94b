package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// SpySpanContext implements the lending.SpanContext interface for testing.
type SpySpanContext struct {
	name       string
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

// SetStatus implements the lending.SpanContext interface for testing.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

// AddAttribute implements the lending.SpanContext interface for testing.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}

	c.attributes[key] = value
}

// GetName returns the span name.
func (c *SpySpanContext) GetName() string {
	return c.name
}

// GetStatus returns the current status of the span.
func (c *SpySpanContext) GetStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// GetAttributes returns a copy of all attributes.
func (c *SpySpanContext) GetAttributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return copyLabels(c.attributes)
}

// SpySpanRecord represents a finished span.
type SpySpanRecord struct {
	Name        string
	Status      string
	StartAttrs  map[string]string
	FinishAttrs map[string]string
	Span        *SpySpanContext
}

// TracingCollectorSpy is a lending.TracingCollector implementation that captures spans for testing.
type TracingCollectorSpy struct {
	started  map[*SpySpanContext]map[string]string
	finished []SpySpanRecord
	mu       sync.Mutex
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{
		started:  make(map[*SpySpanContext]map[string]string),
		finished: make([]SpySpanRecord, 0),
	}
}

// StartSpan implements the lending.TracingCollector interface for testing.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, lending.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := &SpySpanContext{name: name, attributes: copyLabels(attrs)}
	s.started[span] = copyLabels(attrs)

	return ctx, span
}

// FinishSpan implements the lending.TracingCollector interface for testing.
func (s *TracingCollectorSpy) FinishSpan(spanCtx lending.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = append(s.finished, SpySpanRecord{
		Name:        span.name,
		Status:      status,
		StartAttrs:  s.started[span],
		FinishAttrs: copyLabels(attrs),
		Span:        span,
	})

	delete(s.started, span)
}

// GetFinishedSpans returns a copy of all finished span records.
func (s *TracingCollectorSpy) GetFinishedSpans() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpySpanRecord, len(s.finished))
	copy(records, s.finished)

	return records
}

// GetOpenSpanCount returns the number of spans that were started but not finished.
func (s *TracingCollectorSpy) GetOpenSpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.started)
}

var _ lending.TracingCollector = (*TracingCollectorSpy)(nil)
