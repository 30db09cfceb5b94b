package core

import (
	"time"
)

const ReturningBookFromReaderFailedEventType = "ReturningBookFromReaderFailed"

// Reasons a return is rejected.
const (
	FailureReasonBookNotLent             = "book is not lent"
	FailureReasonBookLentToAnotherReader = "book is lent to another reader"
)

// ReturningBookFromReaderFailed records a rejected return. The loan, if any, stays open.
type ReturningBookFromReaderFailed struct {
	EventType   EventTypeString   `json:"event_type"`
	BookID      BookIDString      `json:"book_id"`
	ReaderID    ReaderIDString    `json:"reader_id"`
	FailureInfo FailureInfoString `json:"failure_info"`
	OccurredAt  OccurredAtTS      `json:"occurred_at"`
}

func BuildReturningBookFromReaderFailed(
	bookID BookIDString,
	readerID ReaderIDString,
	failureInfo FailureInfoString,
	occurredAt time.Time,
) ReturningBookFromReaderFailed {

	return ReturningBookFromReaderFailed{
		EventType:   ReturningBookFromReaderFailedEventType,
		BookID:      bookID,
		ReaderID:    readerID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e ReturningBookFromReaderFailed) IsEventType() string      { return ReturningBookFromReaderFailedEventType }
func (e ReturningBookFromReaderFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e ReturningBookFromReaderFailed) IsErrorEvent() bool       { return true }
