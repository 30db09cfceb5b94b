package core

import (
	"time"
)

const BookCopyReturnedByReaderEventType = "BookCopyReturnedByReader"

// BookCopyReturnedByReader closes the open loan of the book and puts the copy back on the shelf.
type BookCopyReturnedByReader struct {
	EventType  EventTypeString `json:"event_type"`
	BookID     BookIDString    `json:"book_id"`
	ReaderID   ReaderIDString  `json:"reader_id"`
	OccurredAt OccurredAtTS    `json:"occurred_at"`
}

func BuildBookCopyReturnedByReader(bookID BookIDString, readerID ReaderIDString, occurredAt time.Time) BookCopyReturnedByReader {
	return BookCopyReturnedByReader{
		EventType:  BookCopyReturnedByReaderEventType,
		BookID:     bookID,
		ReaderID:   readerID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopyReturnedByReader) IsEventType() string      { return BookCopyReturnedByReaderEventType }
func (e BookCopyReturnedByReader) HasOccurredAt() time.Time { return e.OccurredAt }
func (e BookCopyReturnedByReader) IsErrorEvent() bool       { return false }
