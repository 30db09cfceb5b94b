package journal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// contextKey is a private type to prevent context key collisions.
type contextKey string

// CorrelationIDKey is the context key used to store the correlation ID of recorded events.
const CorrelationIDKey contextKey = "journal.correlation_id"

// WithCorrelationID returns a context whose recorded events share the given correlation ID.
//
// Example usage:
//
//	ctx = journal.WithCorrelationID(ctx, uuid.New())
//	manager.BorrowBook(ctx, bookID, readerID)
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// GetCorrelationID extracts the correlation ID from the context, if one is set.
func GetCorrelationID(ctx context.Context) (uuid.UUID, bool) {
	correlationID, ok := ctx.Value(CorrelationIDKey).(uuid.UUID)

	return correlationID, ok
}
