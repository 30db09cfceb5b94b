package journal

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/lending-tracker-go/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookCopiesAddedToCatalogEventType:
		return unmarshalPayload[core.BookCopiesAddedToCatalog](storableEvent.PayloadJSON)

	case core.BookCopyLentToReaderEventType:
		return unmarshalPayload[core.BookCopyLentToReader](storableEvent.PayloadJSON)

	case core.LendingBookToReaderFailedEventType:
		return unmarshalPayload[core.LendingBookToReaderFailed](storableEvent.PayloadJSON)

	case core.BookCopyReturnedByReaderEventType:
		return unmarshalPayload[core.BookCopyReturnedByReader](storableEvent.PayloadJSON)

	case core.ReturningBookFromReaderFailedEventType:
		return unmarshalPayload[core.ReturningBookFromReaderFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
