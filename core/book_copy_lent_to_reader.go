package core

import (
	"time"
)

const BookCopyLentToReaderEventType = "BookCopyLentToReader"

// BookCopyLentToReader opens a loan. The copy count of the book went down by one.
type BookCopyLentToReader struct {
	EventType  EventTypeString `json:"event_type"`
	BookID     BookIDString    `json:"book_id"`
	ReaderID   ReaderIDString  `json:"reader_id"`
	OccurredAt OccurredAtTS    `json:"occurred_at"`
}

func BuildBookCopyLentToReader(bookID BookIDString, readerID ReaderIDString, occurredAt time.Time) BookCopyLentToReader {
	return BookCopyLentToReader{
		EventType:  BookCopyLentToReaderEventType,
		BookID:     bookID,
		ReaderID:   readerID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopyLentToReader) IsEventType() string      { return BookCopyLentToReaderEventType }
func (e BookCopyLentToReader) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookCopyLentToReader) IsErrorEvent() bool       { return false }
