package core

import (
	"time"
)

const LendingBookToReaderFailedEventType = "LendingBookToReaderFailed"

// Reasons a borrow request is rejected.
const (
	FailureReasonReaderNotActive   = "reader account is not active"
	FailureReasonNoCopiesAvailable = "no copies available"
)

// LendingBookToReaderFailed records a rejected borrow request. Neither stock nor loans changed.
type LendingBookToReaderFailed struct {
	EventType   EventTypeString   `json:"event_type"`
	BookID      BookIDString      `json:"book_id"`
	ReaderID    ReaderIDString    `json:"reader_id"`
	FailureInfo FailureInfoString `json:"failure_info"`
	OccurredAt  OccurredAtTS      `json:"occurred_at"`
}

func BuildLendingBookToReaderFailed(
	bookID BookIDString,
	readerID ReaderIDString,
	failureInfo FailureInfoString,
	occurredAt time.Time,
) LendingBookToReaderFailed {

	return LendingBookToReaderFailed{
		EventType:   LendingBookToReaderFailedEventType,
		BookID:      bookID,
		ReaderID:    readerID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e LendingBookToReaderFailed) IsEventType() string      { return LendingBookToReaderFailedEventType }
func (e LendingBookToReaderFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e LendingBookToReaderFailed) IsErrorEvent() bool       { return true }
