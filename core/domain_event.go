package core

import (
	"time"
)

type DomainEvents = []DomainEvent

// DomainEvent is implemented by every fact the lending manager records.
type DomainEvent interface {
	IsEventType() string
	HasOccurredAt() time.Time

	// IsErrorEvent is true for rejected operations.
	IsErrorEvent() bool
}
