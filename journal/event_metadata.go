package journal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// ErrMappingToEventMetadataFailed is returned when the metadata of a journal entry can't be decoded.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// EventMetadata travels with every recorded lending event.
// All three IDs are UUID strings. A recorded event causes itself, so CausationID equals MessageID.
type EventMetadata struct {
	MessageID     string `json:"message_id"`
	CausationID   string `json:"causation_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func metadataFor(ctx context.Context) EventMetadata {
	messageID := uuid.NewString()

	correlationID := messageID
	if id, ok := GetCorrelationID(ctx); ok {
		correlationID = id.String()
	}

	return EventMetadata{
		MessageID:     messageID,
		CausationID:   messageID,
		CorrelationID: correlationID,
	}
}

// EventMetadataFrom decodes the metadata stored with a journal entry.
// Entries built with BuildStorableEventWithEmptyMetadata yield the zero value.
func EventMetadataFrom(storableEvent StorableEvent) (EventMetadata, error) {
	var metadata EventMetadata

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadata, nil
}
