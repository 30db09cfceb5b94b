package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/lending-tracker-go/core"
)

var (
	// ErrMappingToStorableEventFailedForDomainEvent is returned when a domain event can't be serialized.
	ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

	// ErrMappingToStorableEventFailedForMetadata is returned when event metadata can't be serialized.
	ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")
)

var emptyMetadataJSON = []byte("{}")

type StorableEvents = []StorableEvent

// StorableEvent is a journal entry: the event type, when it happened and two JSON documents.
// SequenceNumber stays 0 until the Journal appends the entry.
type StorableEvent struct {
	SequenceNumber uint
	EventType      string
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
}

// BuildStorableEvent checks both documents and reports every invalid one.
func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON, metadataJSON []byte) (StorableEvent, error) {
	var errs []error

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		errs = append(errs, ErrInvalidPayloadJSON)
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		errs = append(errs, ErrInvalidMetadataJSON)
	}

	if err := errors.Join(errs...); err != nil {
		return StorableEvent{}, err
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

func BuildStorableEventWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (StorableEvent, error) {
	return BuildStorableEvent(eventType, occurredAt, payloadJSON, emptyMetadataJSON)
}

// StorableEventFrom serializes a lending event together with its metadata.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	return BuildStorableEvent(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
}

// IsAppended reports whether the entry came back from a Journal.
func (e StorableEvent) IsAppended() bool {
	return e.SequenceNumber > 0
}
