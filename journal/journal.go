package journal

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/core"
	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// Journal is an append-only, in-memory log of storable events. It is safe for concurrent use.
type Journal struct {
	mu     sync.RWMutex
	events StorableEvents
}

// NewJournal creates an empty Journal.
func NewJournal() *Journal {
	return &Journal{
		events: make(StorableEvents, 0),
	}
}

// Record converts the domain event into a StorableEvent and appends it.
//
// Every recorded event gets a fresh message ID, which doubles as causation ID. The correlation ID
// is taken from the context (see WithCorrelationID) and defaults to the message ID.
func (j *Journal) Record(ctx context.Context, event core.DomainEvent) error {
	storableEvent, err := StorableEventFrom(event, metadataFor(ctx))
	if err != nil {
		return err
	}

	return j.Append(ctx, storableEvent)
}

// Append appends already built storable events, assigning consecutive sequence numbers starting at 1.
func (j *Journal) Append(ctx context.Context, storableEvents ...StorableEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, storableEvent := range storableEvents {
		storableEvent.SequenceNumber = uint(len(j.events)) + 1
		j.events = append(j.events, storableEvent)
	}

	return nil
}

// Query returns the storable events matching the filter in append order.
func (j *Journal) Query(ctx context.Context, filter Filter) (StorableEvents, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	matching := make(StorableEvents, 0)
	for _, storableEvent := range j.events {
		if filter.Matches(storableEvent) {
			matching = append(matching, storableEvent)
		}
	}

	return matching, nil
}

// DomainEvents returns the domain events matching the filter in append order.
func (j *Journal) DomainEvents(ctx context.Context, filter Filter) (core.DomainEvents, error) {
	storableEvents, err := j.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return DomainEventsFrom(storableEvents)
}

// CurrentLoans projects the open loans (book -> reader) by replaying lend and return events.
// A lend event replaces the loan of the same book, mirroring the single loan slot per book.
func (j *Journal) CurrentLoans(ctx context.Context) (map[core.BookIDString]core.ReaderIDString, error) {
	filter := BuildFilter().
		AnyEventTypeOf(core.BookCopyLentToReaderEventType, core.BookCopyReturnedByReaderEventType).
		Finalize()

	history, err := j.DomainEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	loans := make(map[core.BookIDString]core.ReaderIDString)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookCopyLentToReader:
			loans[e.BookID] = e.ReaderID

		case core.BookCopyReturnedByReader:
			if loans[e.BookID] == e.ReaderID {
				delete(loans, e.BookID)
			}
		}
	}

	return loans, nil
}

// Len returns the number of appended events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}

var _ lending.EventRecorder = (*Journal)(nil)
