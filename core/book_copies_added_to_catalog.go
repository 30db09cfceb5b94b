package core

import (
	"time"
)

const BookCopiesAddedToCatalogEventType = "BookCopiesAddedToCatalog"

// BookCopiesAddedToCatalog records a stock change. Quantity is kept as given, so negative adjustments show up too.
type BookCopiesAddedToCatalog struct {
	EventType  EventTypeString `json:"event_type"`
	BookID     BookIDString    `json:"book_id"`
	Quantity   int             `json:"quantity"`
	OccurredAt OccurredAtTS    `json:"occurred_at"`
}

func BuildBookCopiesAddedToCatalog(bookID BookIDString, quantity int, occurredAt time.Time) BookCopiesAddedToCatalog {
	return BookCopiesAddedToCatalog{
		EventType:  BookCopiesAddedToCatalogEventType,
		BookID:     bookID,
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesAddedToCatalog) IsEventType() string      { return BookCopiesAddedToCatalogEventType }
func (e BookCopiesAddedToCatalog) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookCopiesAddedToCatalog) IsErrorEvent() bool       { return false }
