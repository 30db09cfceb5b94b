package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/core"
	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// EventRecorderSpy is a lending.EventRecorder that captures domain events for testing.
// It can be configured to fail, to exercise the Manager's handling of recorder errors.
type EventRecorderSpy struct {
	events []core.DomainEvent
	err    error
	mu     sync.Mutex
}

// NewEventRecorderSpy creates a new EventRecorderSpy.
// If err is non-nil every Record call returns it, after capturing the event.
func NewEventRecorderSpy(err error) *EventRecorderSpy {
	return &EventRecorderSpy{
		events: make([]core.DomainEvent, 0),
		err:    err,
	}
}

// Record implements the lending.EventRecorder interface for testing.
func (s *EventRecorderSpy) Record(_ context.Context, event core.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)

	return s.err
}

// GetEvents returns a copy of all captured events.
func (s *EventRecorderSpy) GetEvents() []core.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]core.DomainEvent, len(s.events))
	copy(events, s.events)

	return events
}

// LastEvent returns the most recently captured event, nil if there is none.
func (s *EventRecorderSpy) LastEvent() core.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return nil
	}

	return s.events[len(s.events)-1]
}

var _ lending.EventRecorder = (*EventRecorderSpy)(nil)
